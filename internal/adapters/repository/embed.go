package repository

import _ "embed"

//go:embed data/employees.json
var defaultDataset []byte

package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/empdash/internal/adapters/repository"
	"github.com/okian/empdash/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormats(t *testing.T) {
	Convey("Given dataset file names", t, func() {
		cases := map[string]repository.Format{
			"team.json":     repository.FormatJSON,
			"team.YAML":     repository.FormatYAML,
			"dir/team.yml":  repository.FormatYAML,
			"exports/a.csv": repository.FormatCSV,
		}
		for path, want := range cases {
			got, err := repository.FormatFromPath(path)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		Convey("Then unknown or missing extensions are rejected", func() {
			_, err := repository.FormatFromPath("team.xlsx")
			So(errors.Is(err, repository.ErrUnsupportedFormat), ShouldBeTrue)
			_, err = repository.FormatFromPath("team")
			So(errors.Is(err, repository.ErrUnsupportedFormat), ShouldBeTrue)
		})
	})
}

func TestDecodeJSON(t *testing.T) {
	Convey("Given a JSON array with one malformed element", t, func() {
		ctx := context.Background()
		doc := `[
		  {"id":"1","firstName":"Ana","email":"ana@x.io","hireDate":"2020-01-01","performanceRating":4.8,"salary":120000,"projectsCompleted":14,"skills":["Go"]},
		  {"id":"2","firstName":"Ben","email":"ben@x.io","salary":"lots"},
		  null,
		  {"id":"3","firstName":"Cy","email":"cy@x.io","hireDate":"2021-01-01","performanceRating":4.1,"salary":95000}
		]`

		batch, err := repository.Decode(ctx, strings.NewReader(doc), repository.FormatJSON)

		Convey("Then good records survive and bad ones become failures", func() {
			So(err, ShouldBeNil)
			So(batch.Rows, ShouldEqual, 4)
			So(len(batch.Records), ShouldEqual, 2)
			So(batch.Records[0].FirstName, ShouldEqual, "Ana")
			So(batch.Records[0].Skills, ShouldResemble, []string{"Go"})
			So(batch.Records[1].FirstName, ShouldEqual, "Cy")
			So(batch.Positions, ShouldResemble, []int{0, 3})

			So(len(batch.Failures), ShouldEqual, 2)
			So(batch.Failures[0].Index, ShouldEqual, 1)
			So(batch.Failures[0].Email, ShouldEqual, "ben@x.io")
			So(errors.Is(batch.Failures[0].Err, repository.ErrDecodeRecord), ShouldBeTrue)
			So(batch.Failures[1].Index, ShouldEqual, 2)
		})
	})

	Convey("Given a JSON object wrapping the employees", t, func() {
		doc := `{"employees":[{"firstName":"Ana","email":"ana@x.io"}]}`
		batch, err := repository.Decode(context.Background(), strings.NewReader(doc), repository.FormatJSON)

		So(err, ShouldBeNil)
		So(len(batch.Records), ShouldEqual, 1)
	})

	Convey("Given a JSON object without an employees key", t, func() {
		doc := `{"staff":[{"firstName":"Ana","email":"ana@x.io"}]}`
		_, err := repository.Decode(context.Background(), strings.NewReader(doc), repository.FormatJSON)

		So(errors.Is(err, repository.ErrDecode), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "no employees key")
	})

	Convey("Given a document that is not JSON", t, func() {
		_, err := repository.Decode(context.Background(), strings.NewReader(`{{`), repository.FormatJSON)

		So(errors.Is(err, repository.ErrDecode), ShouldBeTrue)
	})

	Convey("Given an empty document", t, func() {
		batch, err := repository.Decode(context.Background(), strings.NewReader("  "), repository.FormatJSON)

		So(err, ShouldBeNil)
		So(batch.Rows, ShouldEqual, 0)
	})
}

func TestDecodeYAML(t *testing.T) {
	Convey("Given a YAML sequence", t, func() {
		doc := `
- id: "1"
  firstName: Ana
  email: ana@x.io
  isActive: true
  skills: [Go, SQL]
  hireDate: "2020-01-01"
  performanceRating: 4.8
  salary: 120000
- just a string
- id: "2"
  firstName: Ben
  salary: [1, 2]
`
		batch, err := repository.Decode(context.Background(), strings.NewReader(doc), repository.FormatYAML)

		Convey("Then each element is decoded on its own", func() {
			So(err, ShouldBeNil)
			So(batch.Rows, ShouldEqual, 3)
			So(len(batch.Records), ShouldEqual, 1)
			So(batch.Records[0].IsActive, ShouldBeTrue)
			So(batch.Records[0].Skills, ShouldResemble, []string{"Go", "SQL"})
			So(batch.Records[0].Salary, ShouldEqual, 120000.0)
			So(len(batch.Failures), ShouldEqual, 2)
			So(batch.Failures[0].Index, ShouldEqual, 1)
			So(batch.Failures[1].Index, ShouldEqual, 2)
		})
	})

	Convey("Given a YAML mapping with an employees key", t, func() {
		doc := "employees:\n  - firstName: Ana\n    email: ana@x.io\n"
		batch, err := repository.Decode(context.Background(), strings.NewReader(doc), repository.FormatYAML)

		So(err, ShouldBeNil)
		So(len(batch.Records), ShouldEqual, 1)
	})

	Convey("Given a YAML mapping without employees", t, func() {
		_, err := repository.Decode(context.Background(), strings.NewReader("staff: []\n"), repository.FormatYAML)

		So(errors.Is(err, repository.ErrDecode), ShouldBeTrue)
	})
}

func TestDecodeCSV(t *testing.T) {
	Convey("Given a CSV export with loose headers", t, func() {
		doc := "ID,First Name,last_name,Email,Department,Is Active,Skills,Hire Date,Performance Rating,Salary,Projects Completed,Notes\n" +
			"1,Ana,Ng,ana@x.io,Engineering,true,Go;SQL | Kafka,2020-01-01,4.8,120000,14,ignored\n" +
			"2,Ben,Li,ben@x.io,Sales,yes,,2019-01-01,3.6,65000,5,\n" +
			"3,Cy,Wu,cy@x.io,Sales\n" +
			"4,Dee,Ko,dee@x.io,Design,false,,2017-01-01,3.2,95000,4,\n"

		batch, err := repository.Decode(context.Background(), strings.NewReader(doc), repository.FormatCSV)

		Convey("Then rows map onto records by header name", func() {
			So(err, ShouldBeNil)
			So(batch.Rows, ShouldEqual, 4)
			So(len(batch.Records), ShouldEqual, 2)

			ana := batch.Records[0]
			So(ana.ID, ShouldEqual, "1")
			So(ana.LastName, ShouldEqual, "Ng")
			So(ana.IsActive, ShouldBeTrue)
			So(ana.Skills, ShouldResemble, []string{"Go", "SQL", "Kafka"})
			So(ana.PerformanceRating, ShouldEqual, 4.8)
			So(ana.ProjectsCompleted, ShouldEqual, 14)
			So(batch.Records[1].FirstName, ShouldEqual, "Dee")
		})

		Convey("And unparsable or short rows are failures", func() {
			So(len(batch.Failures), ShouldEqual, 2)
			So(batch.Failures[0].Index, ShouldEqual, 1)
			So(batch.Failures[0].Reason, ShouldContainSubstring, "Is Active")
			So(batch.Failures[1].Index, ShouldEqual, 2)
			So(batch.Failures[1].Reason, ShouldContainSubstring, "expected 12 fields")
		})
	})

	Convey("Given an empty CSV", t, func() {
		batch, err := repository.Decode(context.Background(), strings.NewReader(""), repository.FormatCSV)

		So(err, ShouldBeNil)
		So(batch.Rows, ShouldEqual, 0)
	})
}

func TestDecodeDuplicates(t *testing.T) {
	Convey("Given records that repeat an id or an e-mail", t, func() {
		doc := `[
		  {"id":"1","email":"ana@x.io"},
		  {"id":"1","email":"other@x.io"},
		  {"email":"ben@x.io"},
		  {"email":"BEN@x.io"}
		]`
		batch, err := repository.Decode(context.Background(), strings.NewReader(doc), repository.FormatJSON)

		Convey("Then only the first of each is kept", func() {
			So(err, ShouldBeNil)
			So(len(batch.Records), ShouldEqual, 2)
			So(len(batch.Failures), ShouldEqual, 2)
			So(errors.Is(batch.Failures[0].Err, repository.ErrDuplicateRecord), ShouldBeTrue)
			So(batch.Failures[1].Index, ShouldEqual, 3)
		})
	})

	Convey("Given rows with neither an id nor an e-mail", t, func() {
		doc := `[
		  {"firstName":"Ana","hireDate":"2020-01-01","salary":90000},
		  {"firstName":"Ben","hireDate":"2019-01-01","salary":65000},
		  {"firstName":"Cy","email":" ","salary":70000}
		]`
		batch, err := repository.Decode(context.Background(), strings.NewReader(doc), repository.FormatJSON)

		Convey("Then none of them counts as a duplicate", func() {
			So(err, ShouldBeNil)
			So(len(batch.Records), ShouldEqual, 3)
			So(batch.Failures, ShouldBeEmpty)
			So(batch.Positions, ShouldResemble, []int{0, 1, 2})
		})
	})

	Convey("Given a deduper shared across two files", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()
		_, err := repository.Decode(ctx, strings.NewReader(`[{"id":"1"}]`), repository.FormatJSON, repository.WithDeduper(d))
		So(err, ShouldBeNil)

		batch, err := repository.Decode(ctx, strings.NewReader("id\n1\n2\n"), repository.FormatCSV, repository.WithDeduper(d))

		Convey("Then the second file drops employees seen in the first", func() {
			So(err, ShouldBeNil)
			So(len(batch.Records), ShouldEqual, 1)
			So(batch.Records[0].ID, ShouldEqual, "2")
			So(d.Size(), ShouldEqual, int64(2))
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a dataset on disk", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		path := filepath.Join(dir, "team.yaml")
		So(os.WriteFile(path, []byte("- firstName: Ana\n  email: ana@x.io\n"), 0o600), ShouldBeNil)

		Convey("Then LoadFile decodes it by extension", func() {
			batch, err := repository.LoadFile(ctx, path)
			So(err, ShouldBeNil)
			So(len(batch.Records), ShouldEqual, 1)
		})

		Convey("Then a missing file is a decode error", func() {
			_, err := repository.LoadFile(ctx, filepath.Join(dir, "gone.json"))
			So(errors.Is(err, repository.ErrDecode), ShouldBeTrue)
		})

		Convey("Then an unknown extension is rejected before opening", func() {
			_, err := repository.LoadFile(ctx, filepath.Join(dir, "team.txt"))
			So(errors.Is(err, repository.ErrUnsupportedFormat), ShouldBeTrue)
		})
	})
}

func TestDefaultDataset(t *testing.T) {
	Convey("Given the embedded dataset", t, func() {
		batch, err := repository.Default(context.Background())

		Convey("Then it decodes cleanly", func() {
			So(err, ShouldBeNil)
			So(batch.Rows, ShouldEqual, 20)
			So(len(batch.Records), ShouldEqual, 20)
			So(batch.Failures, ShouldBeEmpty)
			So(batch.Records[0].FullName(), ShouldEqual, "John Smith")
		})
	})
}

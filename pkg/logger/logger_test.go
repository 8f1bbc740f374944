package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the logger is initialised with defaults", t, func() {
		So(Init(), ShouldBeNil)
		defer func() { So(Sync(), ShouldBeNil) }()

		Convey("Then the global logger is available", func() {
			So(Get(), ShouldNotBeNil)
			So(Named("test"), ShouldNotBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing text to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf)), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging at info", func() {
			Get().Info(ctx, "dataset loaded", String("source", "embedded"), Int("records", 20))

			Convey("Then the message and fields are written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "dataset loaded")
				So(out, ShouldContainSubstring, "records=20")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging below the level", func() {
			Get().Debug(ctx, "hidden")
			So(buf.String(), ShouldNotContainSubstring, "hidden")
		})

		Convey("When the level is lowered", func() {
			So(SetLevelString("debug"), ShouldBeNil)
			Get().Debug(ctx, "visible")
			So(buf.String(), ShouldContainSubstring, "visible")
			So(SetLevelString("info"), ShouldBeNil)
		})

		Convey("When using a named logger", func() {
			Named("loader").Warn(ctx, "skipped", Bool("duplicate", true))
			So(buf.String(), ShouldContainSubstring, "loader.duplicate=true")
		})
	})

	Convey("Given a logger writing JSON", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf), WithFormat("JSON")), ShouldBeNil)

		Get().Error(context.Background(), "render failed", Float64("took_ms", 1.5))

		Convey("Then each line is a JSON object", func() {
			line := strings.TrimSpace(buf.String())
			var obj map[string]any
			So(json.Unmarshal([]byte(line), &obj), ShouldBeNil)
			So(obj["msg"], ShouldEqual, "render failed")
			So(obj["level"], ShouldEqual, "ERROR")
			So(obj["took_ms"], ShouldEqual, 1.5)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		So(SetLevelString("warning"), ShouldBeNil)
		So(SetLevelString("ERROR"), ShouldBeNil)
		So(SetLevelString(""), ShouldBeNil)
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}

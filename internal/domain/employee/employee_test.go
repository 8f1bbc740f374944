package employee_test

import (
	"errors"
	"testing"

	"github.com/okian/empdash/internal/domain/employee"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTierFor(t *testing.T) {
	Convey("Given the tier ladder", t, func() {
		Convey("When a rating sits exactly on a threshold", func() {
			Convey("Then it resolves to the higher tier", func() {
				So(employee.TierFor(4.5), ShouldEqual, employee.TierElite)
				So(employee.TierFor(4.0), ShouldEqual, employee.TierStrong)
				So(employee.TierFor(3.5), ShouldEqual, employee.TierAverage)
			})
		})

		Convey("When a rating is just below a threshold", func() {
			Convey("Then it resolves to the lower tier", func() {
				So(employee.TierFor(4.49999), ShouldEqual, employee.TierStrong)
				So(employee.TierFor(3.99), ShouldEqual, employee.TierAverage)
				So(employee.TierFor(3.49), ShouldEqual, employee.TierLow)
			})
		})

		Convey("When the rating is outside the usual 0-5 range", func() {
			Convey("Then the ladder still yields a known tier", func() {
				So(employee.TierFor(7), ShouldEqual, employee.TierElite)
				So(employee.TierFor(-1), ShouldEqual, employee.TierLow)
				So(employee.TierFor(-1).Valid(), ShouldBeTrue)
			})
		})

		Convey("Then Tiers lists every tier best first", func() {
			So(employee.Tiers(), ShouldResemble, []employee.Tier{
				employee.TierElite, employee.TierStrong, employee.TierAverage, employee.TierLow,
			})
			So(employee.Tier("Legendary").Valid(), ShouldBeFalse)
		})
	})
}

func TestRecordKey(t *testing.T) {
	Convey("Given employee records", t, func() {
		Convey("When the record has an id", func() {
			r := employee.Record{ID: " e-1 ", Email: "A@x.io"}
			So(r.Key(), ShouldEqual, "id:e-1")
		})

		Convey("When the record has no id", func() {
			a := employee.Record{Email: "Ana@Example.com"}
			b := employee.Record{Email: " ana@example.com"}
			So(a.Key(), ShouldEqual, b.Key())
		})

		Convey("When the record has neither an id nor an e-mail", func() {
			So(employee.Record{FirstName: "Ana", Email: "  "}.Key(), ShouldBeEmpty)
		})

		Convey("Then FullName joins first and last name", func() {
			So(employee.Record{FirstName: "Ana", LastName: "Diaz"}.FullName(), ShouldEqual, "Ana Diaz")
			So(employee.Record{FirstName: "Ana"}.FullName(), ShouldEqual, "Ana")
		})
	})
}

func TestNewFailure(t *testing.T) {
	Convey("Given a skipped record", t, func() {
		cause := errors.New("boom")
		f := employee.NewFailure(3, employee.Record{ID: "e-3", Email: "c@x.io"}, cause)

		Convey("Then the failure keeps the index, identity and reason", func() {
			So(f.Index, ShouldEqual, 3)
			So(f.ID, ShouldEqual, "e-3")
			So(f.Email, ShouldEqual, "c@x.io")
			So(f.Reason, ShouldEqual, "boom")
			So(errors.Is(f.Err, cause), ShouldBeTrue)
		})
	})
}

package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/lurespread/internal/adapters/catalog"
	"github.com/okian/lurespread/internal/domain/model"
)

func TestLoadFile(t *testing.T) {
	Convey("Given the test catalog file", t, func() {
		res, err := catalog.LoadFile(context.Background(), "testdata/lures.yaml")
		So(err, ShouldBeNil)
		So(res.Lures, ShouldHaveLength, 3)

		Convey("Then species aliases are canonicalized and duplicates dropped", func() {
			So(res.Lures[0].Species, ShouldResemble, []model.Species{
				model.SpeciesBarracuda, model.SpeciesGiantTrevally,
			})
			So(res.Lures[1].Species, ShouldResemble, []model.Species{
				model.SpeciesWahoo, model.SpeciesYellowfinTuna, model.SpeciesBlueMarlin,
			})
		})

		Convey("Then unknown species are kept and reported", func() {
			So(res.Lures[2].Species, ShouldContain, model.Species("grouper"))
			So(res.Warnings, ShouldHaveLength, 1)
			So(res.Warnings[0].LureID, ShouldEqual, "bait-rig-mahi")
		})

		Convey("Then colours are normalized and contrast derived once", func() {
			So(res.Lures[0].PrimaryColor, ShouldEqual, "silver")
			So(res.Lures[0].Contrast, ShouldEqual, model.ContrastNatural)
			So(res.Lures[1].Contrast, ShouldEqual, model.ContrastDark)
			So(res.Lures[2].PrimaryColor, ShouldEqual, "blue-silver")
		})

		Convey("Then optional fields stay unset", func() {
			So(res.Lures[0].WeightG, ShouldBeNil)
			So(*res.Lures[1].WeightG, ShouldEqual, 140)
			So(res.Lures[2].Depth, ShouldBeNil)
			So(res.Lures[2].Technique, ShouldEqual, model.Technique(""))
			So(res.Lures[2].Trollable(), ShouldBeTrue)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := catalog.LoadFile(context.Background(), "testdata/nope.yaml")
		So(errors.Is(err, catalog.ErrDecode), ShouldBeTrue)
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := catalog.LoadFile(ctx, "testdata/lures.yaml")
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestDecode(t *testing.T) {
	Convey("Given catalog documents with problems", t, func() {
		cases := []struct {
			name string
			doc  string
			want error
		}{
			{"duplicate ids", "lures:\n  - id: a\n  - id: a\n", catalog.ErrDuplicateID},
			{"missing id", "lures:\n  - primary_color: red\n", catalog.ErrInvalidLure},
			{"inverted speed", "lures:\n  - id: a\n    speed_kn: {min: 9, max: 4}\n", catalog.ErrInvalidLure},
			{"inverted depth", "lures:\n  - id: a\n    depth_m: {min: 3, max: 1}\n", catalog.ErrInvalidLure},
			{"unknown field", "lures:\n  - id: a\n    colour: red\n", catalog.ErrDecode},
			{"broken yaml", "lures: [", catalog.ErrDecode},
		}
		for _, tc := range cases {
			Convey("When the document has "+tc.name, func() {
				_, err := catalog.Decode(strings.NewReader(tc.doc))
				So(errors.Is(err, tc.want), ShouldBeTrue)
			})
		}
	})

	Convey("Given an empty document", t, func() {
		res, err := catalog.Decode(strings.NewReader(""))
		So(err, ShouldBeNil)
		So(res.Lures, ShouldBeEmpty)
	})

	Convey("Given the sample catalog shipped with the service", t, func() {
		res, err := catalog.LoadFile(context.Background(), "../../../configs/catalog.yaml")
		So(err, ShouldBeNil)
		So(res.Warnings, ShouldBeEmpty)
		So(len(res.Lures), ShouldBeGreaterThan, 8)
	})
}

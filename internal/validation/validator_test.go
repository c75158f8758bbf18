package validation_test

import (
	"strings"
	"testing"

	"github.com/okian/lurespread/internal/domain/model"
	"github.com/okian/lurespread/internal/validation"
	. "github.com/smartystreets/goconvey/convey"
)

func validConditions() model.Conditions {
	return model.Conditions{
		Zone:       model.ZoneReef,
		WaterDepth: 30,
		BoatSpeed:  6,
		TimeOfDay:  model.TimeMorning,
		Light:      model.LightStrong,
		Turbidity:  model.TurbidityClear,
		SeaState:   model.SeaCalm,
		Tide:       model.TideRising,
		Moon:       model.MoonNew,
		Profile:    model.ProfileStandard,
		Lines:      3,
	}
}

func TestValidateStruct(t *testing.T) {
	Convey("Given valid conditions", t, func() {
		c := validConditions()
		So(validation.ValidateStruct(&c), ShouldBeNil)

		Convey("A canonical species is accepted", func() {
			c.Species = model.SpeciesWahoo
			So(validation.ValidateStruct(&c), ShouldBeNil)
		})
	})

	Convey("Given conditions with several bad fields", t, func() {
		c := validConditions()
		c.Zone = "estuary"
		c.WaterDepth = 0
		c.Lines = 7
		c.Species = "unicorn"

		err := validation.ValidateStruct(&c)

		Convey("Then every field is reported by its JSON name", func() {
			So(err, ShouldNotBeNil)
			fields := []string{}
			for _, fe := range err.Errors() {
				fields = append(fields, fe.Field)
			}
			So(fields, ShouldContain, "zone")
			So(fields, ShouldContain, "water_depth_m")
			So(fields, ShouldContain, "lines")
			So(fields, ShouldContain, "species")
		})

		Convey("Then messages are readable", func() {
			msg := err.Error()
			So(msg, ShouldContainSubstring, "zone must be one of")
			So(msg, ShouldContainSubstring, "lines must be at most 5")
			So(msg, ShouldContainSubstring, "species is not a known species")
			So(len(err.Messages()), ShouldEqual, 4)
			So(strings.Count(msg, ";"), ShouldEqual, 3)
		})
	})

	Convey("Given a missing profile", t, func() {
		c := validConditions()
		c.Profile = ""
		err := validation.ValidateStruct(&c)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldEqual, "boat_profile is required")
	})
}

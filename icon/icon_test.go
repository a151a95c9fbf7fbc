package icon

import (
	"testing"

	"github.com/castdeck/castdeck/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given the registered icons", t, func() {
		Convey("Every icon renders for each variant", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				for i := range icons {
					So(Get(i), ShouldNotBeEmpty)
				}
			}
		})

		Convey("An unknown variant renders nothing", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Play), ShouldBeEmpty)
		})

		Convey("An unregistered icon renders nothing", func() {
			viper.Set(key.IconsVariant, plain)
			So(Get(Icon(-1)), ShouldBeEmpty)
		})
	})
}

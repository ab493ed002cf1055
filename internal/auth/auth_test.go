package auth_test

import (
	"errors"
	"testing"

	auth "github.com/derslik/derslik/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecode_DevTokens(t *testing.T) {
	Convey("Given a decoder in dev mode", t, func() {
		d := auth.NewDecoder("secret", true)

		Convey("Then the fixed dev tokens should resolve", func() {
			c, err := d.Decode("dev-token")
			So(err, ShouldBeNil)
			So(c.Role, ShouldEqual, auth.RoleTeacher)

			c, err = d.Decode("dev-debug-token")
			So(err, ShouldBeNil)
			So(c.Role, ShouldEqual, auth.RoleDebug)

			c, err = d.Decode("dev-unity-token")
			So(err, ShouldBeNil)
			So(c.Role, ShouldEqual, auth.RoleUnity)
		})

		Convey("And outside dev mode the same tokens should be rejected", func() {
			prod := auth.NewDecoder("secret", false)
			_, err := prod.Decode("dev-token")
			So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)
		})
	})
}

func TestDecode_JWT(t *testing.T) {
	Convey("Given a decoder with a signing secret", t, func() {
		d := auth.NewDecoder("classroom-secret", false)

		Convey("When decoding a token it minted", func() {
			token, err := d.Mint("teacher-42", auth.RoleTeacher)
			So(err, ShouldBeNil)

			c, err := d.Decode(token)

			Convey("Then the claims should round-trip", func() {
				So(err, ShouldBeNil)
				So(c.Subject, ShouldEqual, "teacher-42")
				So(c.Role, ShouldEqual, auth.RoleTeacher)
			})
		})

		Convey("When the token is signed with a different secret", func() {
			other := auth.NewDecoder("wrong-secret", false)
			token, err := other.Mint("intruder", auth.RoleAdmin)
			So(err, ShouldBeNil)

			_, err = d.Decode(token)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)
			})
		})

		Convey("When the token carries an unknown role", func() {
			raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub":  "someone",
				"role": "janitor",
			})
			token, err := raw.SignedString([]byte("classroom-secret"))
			So(err, ShouldBeNil)

			_, err = d.Decode(token)

			Convey("Then it should be rejected as unknown role", func() {
				So(errors.Is(err, auth.ErrUnknownRole), ShouldBeTrue)
			})
		})

		Convey("When the signing method is not HMAC", func() {
			raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
				"sub":  "someone",
				"role": "teacher",
			})
			token, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
			So(err, ShouldBeNil)

			_, err = d.Decode(token)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)
			})
		})

		Convey("When the token is empty or garbage", func() {
			_, err := d.Decode("")
			So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)

			_, err = d.Decode("not-a-jwt")
			So(errors.Is(err, auth.ErrInvalidToken), ShouldBeTrue)
		})
	})
}

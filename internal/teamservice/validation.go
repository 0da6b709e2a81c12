package teamservice

import (
	"regexp"

	"github.com/arvanweb/sitecms/internal/common"
)

var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(name, 1, 255), "name", "must not be more than 255 characters long")
}

func validateRole(v *common.Validator, role string) {
	v.Check(role != "", "role", "must be provided")
	v.Check(v.CheckStringLength(role, 1, 255), "role", "must not be more than 255 characters long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

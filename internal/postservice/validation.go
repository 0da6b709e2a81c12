package postservice

import (
	"regexp"

	"github.com/arvanweb/sitecms/internal/common"
)

var SlugRX = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 255), "title", "must not be more than 255 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateSlug(v *common.Validator, slug string) {
	v.Check(v.CheckStringLength(slug, 1, 255), "slug", "must not be more than 255 characters long")
	v.Check(SlugRX.MatchString(slug), "slug", "must only contain lowercase letters, numbers, and hyphens")
}

func validateStatus(v *common.Validator, status string) {
	v.Check(common.In(PostStatus(status), StatusDraft, StatusScheduled, StatusPublished), "status", "must be draft, scheduled, or published")
}

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(name, 1, 255), "name", "must not be more than 255 characters long")
}

func validateColor(v *common.Validator, color string) {
	v.Check(v.CheckStringLength(color, 0, 100), "color", "must not be more than 100 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

package projectservice

import "github.com/arvanweb/sitecms/internal/common"

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 255), "title", "must not be more than 255 characters long")
}

func validateType(v *common.Validator, t string) {
	v.Check(common.In(ProjectType(t), TypeWebsite, TypeApp, TypeSEO, TypeEcommerce, TypeWebApp), "type", "must be website, app, seo, ecommerce, or webapp")
}

func validateCategory(v *common.Validator, category string) {
	v.Check(category != "", "category", "must be provided")
	v.Check(v.CheckStringLength(category, 1, 255), "category", "must not be more than 255 characters long")
}

func validateYear(v *common.Validator, year string) {
	v.Check(v.CheckStringLength(year, 0, 10), "year", "must not be more than 10 characters long")
}

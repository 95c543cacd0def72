package web

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/session"
	"github.com/gofiber/fiber/v3"
)

// redirectWithErrors stores the field errors and the user's input for the next render of
// the page and sends the user back to it.
func redirectWithErrors(c fiber.Ctx, sess *session.State, errs form.FieldErrors, input form.Body, path string) error {
	flash := session.FlashFrom(errs, input)
	flash.Page = path
	sess.SetFlash(flash)

	return c.Redirect().Status(fiber.StatusSeeOther).To(path)
}

// takeFlash returns the flash left by a failed save of the same page. A flash left for a
// different page is dropped.
func takeFlash(sess *session.State, path string) session.Flash {
	flash, ok := sess.TakeFlash()
	if !ok || flash.Page != path {
		return session.Flash{}
	}

	return flash
}

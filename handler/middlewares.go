package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"userportal/util"
)

// Development CSP that allows localhost connections, carried over from the
// system this replaces.
const cspValue = "default-src 'self' http://localhost:* ws://localhost:* wss://localhost:*; " +
	"connect-src 'self' http://localhost:* ws://localhost:* wss://localhost:*; " +
	"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"img-src 'self' data: https:; " +
	"font-src 'self' https://cdn.jsdelivr.net;"

// ContentSecurityPolicy sets the CSP header on every response.
func ContentSecurityPolicy(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentSecurityPolicy, cspValue)
		return next(c)
	}
}

// uploadedImageKey is where ProfileUpload leaves the public image path for
// the handler behind it.
const uploadedImageKey = "profileImagePath"

// publicUploadPrefix is the URL prefix the static file route serves uploads
// under.
const publicUploadPrefix = "/images/uploads/"

// ProfileUpload persists the "profileImage" multipart file field to
// uploadDir before the route handler runs, and stashes the file's public
// URL path in the request context. Requests without a file pass through
// untouched. The file keeps its original client-supplied filename, so a
// second upload with the same name overwrites the first.
func ProfileUpload(uploadDir string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			file, err := c.FormFile("profileImage")
			if err != nil {
				// no file field, or not a multipart form
				return next(c)
			}

			filename, err := util.SaveUploadedFile(file, uploadDir)
			if err != nil {
				log.Error("Cannot save uploaded profile image: ", err)
				return c.Render(http.StatusInternalServerError, "add_user.html", map[string]interface{}{
					"baseData":     baseData(c, "addUser"),
					"errorMessage": "Unable to save user. Please try again.",
				})
			}

			c.Set(uploadedImageKey, publicUploadPrefix+filename)
			return next(c)
		}
	}
}

// uploadedImagePath returns the public path ProfileUpload recorded for this
// request, nil when no file was uploaded.
func uploadedImagePath(c echo.Context) *string {
	if p, ok := c.Get(uploadedImageKey).(string); ok {
		return &p
	}
	return nil
}

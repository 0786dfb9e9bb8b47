package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourplaces/backend/internal/pkg/httperror"
	"github.com/yourplaces/backend/internal/pkg/storage"
)

// MaxImageSize is the upload ceiling enforced before any handler runs.
const MaxImageSize = 10 << 20 // 10 MB

// mimeTypes is the accept list; the mapped value becomes the stored
// extension.
var mimeTypes = map[string]string{
	"image/png":  "png",
	"image/jpg":  "jpg",
	"image/jpeg": "jpeg",
}

// UploadImage accepts a single image file under the given form field,
// stores it under a fresh unique name and exposes the stored path to the
// handler via the "imagePath" context key.
//
// Ownership: once a handler durably commits a record referencing the path it
// must set "imageCommitted"; otherwise the terminal error handler deletes
// the file when the request fails.
func UploadImage(store storage.Storage, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageSize)

		file, header, err := c.Request.FormFile(field)
		if err != nil {
			c.Error(httperror.UnprocessableEntity("Invalid inputs passed, please check your data."))
			c.Abort()
			return
		}
		defer file.Close()

		if header.Size > MaxImageSize {
			c.Error(httperror.UnprocessableEntity("Invalid inputs passed, please check your data."))
			c.Abort()
			return
		}

		ext, ok := mimeTypes[header.Header.Get("Content-Type")]
		if !ok {
			c.Error(httperror.UnprocessableEntity("Invalid mime type!"))
			c.Abort()
			return
		}

		name := uuid.New().String() + "." + ext
		path, err := store.Save(c.Request.Context(), file, name)
		if err != nil {
			c.Error(httperror.Internal("Uploading image failed, please try again."))
			c.Abort()
			return
		}

		c.Set("imagePath", path)
		c.Next()
	}
}

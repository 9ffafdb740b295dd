package handlers

import (
	"errors"
	"io"
	"net/http"
)

// maxUploadBytes bounds multipart bodies carrying a face image.
const maxUploadBytes = 10 << 20

var errMissingImage = errors.New("image is required")

// readImage parses a multipart form and returns the bytes of its "image" file.
func readImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, errMissingImage
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errMissingImage
	}
	return data, nil
}

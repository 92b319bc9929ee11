package handlers

// Uploader stores uploaded images and returns their public URL. Implemented
// by utils.R2Uploader; handler tests substitute an in-memory fake.
type Uploader interface {
	Upload(data []byte, key, contentType string) (string, error)
	Delete(fileURL string) error
}

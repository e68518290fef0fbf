package domain

// Image is an uploaded file waiting to be pushed to the image host.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadedImage is the image host's answer to a successful upload.
type UploadedImage struct {
	URL      string
	PublicID string
}

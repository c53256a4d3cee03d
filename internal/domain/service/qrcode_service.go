package service

// QRCodeService renders payloads as QR code images.
type QRCodeService interface {
	// GeneratePNG encodes the payload as a PNG image.
	GeneratePNG(payload string) ([]byte, error)
}

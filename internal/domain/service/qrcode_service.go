package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateProductQR generates a QR code pointing at the product page for a slug
	GenerateProductQR(slug string) ([]byte, error)
}

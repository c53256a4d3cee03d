package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"yatra/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePNG_ProducesDecodableImage(t *testing.T) {
	svc := NewQRCodeService(&config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M"})

	data, err := svc.GeneratePNG("YTR-4F7A21BC")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestGeneratePNG_DefaultsWithoutConfig(t *testing.T) {
	svc := NewQRCodeService(nil)

	data, err := svc.GeneratePNG("YTR-00000001")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestGeneratePNG_EmptyPayloadFails(t *testing.T) {
	svc := NewQRCodeService(nil)

	_, err := svc.GeneratePNG("")
	assert.Error(t, err)
}

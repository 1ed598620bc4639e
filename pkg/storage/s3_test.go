package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageKeyFromURL(t *testing.T) {
	const bucket, region = "expo-images", "eu-west-1"

	key, ok := ImageKeyFromURL(bucket, region, "https://expo-images.s3.eu-west-1.amazonaws.com/events/1/cover.jpg")
	assert.True(t, ok)
	assert.Equal(t, "events/1/cover.jpg", key)

	_, ok = ImageKeyFromURL(bucket, region, "https://images.unsplash.com/photo-1540575467063")
	assert.False(t, ok)

	_, ok = ImageKeyFromURL(bucket, region, "https://other-bucket.s3.eu-west-1.amazonaws.com/events/1/cover.jpg")
	assert.False(t, ok)

	_, ok = ImageKeyFromURL(bucket, region, "")
	assert.False(t, ok)

	_, ok = ImageKeyFromURL(bucket, region, "https://expo-images.s3.eu-west-1.amazonaws.com/")
	assert.False(t, ok)
}

func TestValidateImageFileType(t *testing.T) {
	assert.True(t, ValidateImageFileType("image/jpeg", "cover.jpg"))
	assert.True(t, ValidateImageFileType("image/png", "cover.png"))
	assert.True(t, ValidateImageFileType("", "cover.webp"))
	assert.False(t, ValidateImageFileType("application/pdf", "brochure.pdf"))
	assert.False(t, ValidateImageFileType("text/html", "index.html"))
}

func TestImageKey(t *testing.T) {
	assert.Equal(t, "events/4/cover.jpg", ImageKey("4", "cover.jpg"))
	assert.Equal(t, "events/4/cover.jpg", ImageKey("4", "../../cover.jpg"))
}

package assets

import "riftrewind/pkg/models/image"

// Convert the default map from the DDragon to a image type.
func mapToImage(imgData map[string]any) image.Image {
	return image.Image{
		Full:   getStringOrDefault(imgData, "full"),
		Sprite: getStringOrDefault(imgData, "sprite"),
		X:      uint16(getNumberOrDefault(imgData, "x")),
		Y:      uint16(getNumberOrDefault(imgData, "y")),
		W:      uint16(getNumberOrDefault(imgData, "w")),
		H:      uint16(getNumberOrDefault(imgData, "h")),
	}
}

// Return the string if it's available, else returns a empty string.
func getStringOrDefault(data map[string]any, key string) string {
	if val, ok := data[key].(string); ok {
		return val
	}
	return ""
}

// Return the number if it's available, else returns zero.
func getNumberOrDefault(data map[string]any, key string) float64 {
	if val, ok := data[key].(float64); ok {
		return val
	}
	return 0
}

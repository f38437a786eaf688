package media

import "strings"

// Format is a supported output container.
type Format string

const (
	FormatMP4  Format = "mp4"
	FormatAVI  Format = "avi"
	FormatMOV  Format = "mov"
	FormatWebM Format = "webm"
)

// OutputFormats lists the containers a render job can produce.
var OutputFormats = []Format{FormatMP4, FormatAVI, FormatMOV, FormatWebM}

// InputFormats lists the source containers accepted for clips.
var InputFormats = []string{"mp4", "mov", "avi", "webm", "mkv", "flv", "wmv"}

// ParseFormat normalizes a requested output format, falling back to mp4.
func ParseFormat(value string) Format {
	normalized := Format(strings.ToLower(strings.TrimSpace(value)))
	for _, format := range OutputFormats {
		if normalized == format {
			return format
		}
	}
	return FormatMP4
}

// Quality is an output quality tier.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Qualities lists the tiers in ascending order.
var Qualities = []Quality{QualityLow, QualityMedium, QualityHigh}

// ParseQuality normalizes a requested quality tier, falling back to medium.
func ParseQuality(value string) Quality {
	normalized := Quality(strings.ToLower(strings.TrimSpace(value)))
	for _, quality := range Qualities {
		if normalized == quality {
			return quality
		}
	}
	return QualityMedium
}

// QualityPreset maps a quality tier onto concrete encoder settings.
type QualityPreset struct {
	Bitrate string `json:"bitrate"`
	Codec   string `json:"codec"`
}

var qualityPresets = map[Quality]QualityPreset{
	QualityLow:    {Bitrate: "1500k", Codec: "h264"},
	QualityMedium: {Bitrate: "3000k", Codec: "h264"},
	QualityHigh:   {Bitrate: "6000k", Codec: "h265"},
}

// PresetFor returns the encoder settings for a quality tier.
func PresetFor(quality Quality) QualityPreset {
	if preset, ok := qualityPresets[quality]; ok {
		return preset
	}
	return qualityPresets[QualityMedium]
}

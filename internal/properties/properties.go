package properties

import "os"

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

func CopernicusClientID() string {
	return os.Getenv("COPERNICUS_CLIENT_ID")
}

func CopernicusClientSecret() string {
	return os.Getenv("COPERNICUS_CLIENT_SECRET")
}

func CopernicusTokenURL() string {
	return os.Getenv("COPERNICUS_TOKEN_URL")
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

type Color struct {
	R, G, B uint8
}

// ClassColorMap follows the darkgreen→red palette used on the risk class
// maps. Class 0 (no data) renders gray.
var ClassColorMap = map[int]Color{
	0: {128, 128, 128},
	1: {0, 100, 0},
	2: {0, 128, 0},
	3: {255, 255, 0},
	4: {255, 165, 0},
	5: {255, 0, 0},
}

// ScorePalette is the green→darkred gradient for the continuous fire risk
// score, low to high.
var ScorePalette = []Color{
	{0, 128, 0},
	{255, 255, 0},
	{255, 165, 0},
	{255, 0, 0},
	{139, 0, 0},
}

// NDVIPalette is the classic red→yellow→green vegetation ramp.
var NDVIPalette = []Color{
	{255, 0, 0},
	{255, 255, 0},
	{0, 128, 0},
}

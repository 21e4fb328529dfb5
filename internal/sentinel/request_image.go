package sentinel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/vihaanpunjabi/ScienceFair26/internal/properties"
	"golang.org/x/oauth2/clientcredentials"
)

const processURL = "https://sh.dataspace.copernicus.eu/api/v1/process"

// evalscript selecting the six surface reflectance bands the analysis
// consumes, renamed downstream to blue, green, red, nir, swir1, swir2.
const evalscript = `
    //VERSION=3
    function setup() {
      return {
        input: ["B02", "B03", "B04", "B08", "B11", "B12"],
        output: {
          id: "default",
          bands: 6,
          sampleType: SampleType.FLOAT32,
        },
      }
    }

    function evaluatePixel(sample) {
      return [sample.B02, sample.B03, sample.B04, sample.B08, sample.B11, sample.B12];
    }
  `

func calculatePixels(distance float64, resolution float64) int {
	pixels := distance * (111_000.0 / resolution)
	if pixels < 1 {
		return 1
	}
	return int(pixels)
}

// RequestSceneImage fetches a Sentinel-2 L2A composite over the bounding
// box as a six-band float32 GeoTIFF. Scenes above maxCloudCover percent are
// filtered out before mosaicking.
func RequestSceneImage(startDate, endDate time.Time, bound orb.Bound, maxCloudCover int) ([]byte, error) {
	widthPixels := calculatePixels(bound.Max[0]-bound.Min[0], 10)
	heightPixels := calculatePixels(bound.Max[1]-bound.Min[1], 10)
	// Clamp to allowed range (1-2500)
	if widthPixels > 2500 {
		widthPixels = 2500
	}
	if heightPixels > 2500 {
		heightPixels = 2500
	}

	requestPayload := map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"bbox": []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]},
			},
			"data": []map[string]interface{}{
				{
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": startDate.Format(time.RFC3339),
							"to":   endDate.Format(time.RFC3339),
						},
						"maxCloudCoverage": maxCloudCover,
					},
					"type": "sentinel-2-l2a",
				},
			},
		},
		"output": map[string]interface{}{
			"width":  widthPixels,
			"height": heightPixels,
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": evalscript,
		"mosaicking": "mostRecent",
	}

	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %v", err)
	}

	clientID := properties.CopernicusClientID()
	clientSecret := properties.CopernicusClientSecret()
	tokenURL := properties.CopernicusTokenURL()
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return nil, fmt.Errorf("missing required environment variables: COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET, or COPERNICUS_TOKEN_URL")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := config.Client(context.Background())

	retries := 5
	var response *http.Response
	for attempt := 1; attempt <= retries; attempt++ {
		response, err = httpClient.Post(processURL, "application/json", bytes.NewBuffer(requestBody))
		if err == nil && response.StatusCode == http.StatusOK {
			break
		}

		if response != nil {
			body, _ := io.ReadAll(response.Body)
			response.Body.Close()
			response = nil
			err = fmt.Errorf("process API returned an error: %s", string(body))
			fmt.Printf("Attempt %d failed: %v\n", attempt, err)
		} else {
			fmt.Printf("Attempt %d failed: %v\n", attempt, err)
		}

		time.Sleep(5 * time.Second)
	}

	if response == nil {
		return nil, fmt.Errorf("failed to request image after %d attempts: %v", retries, err)
	}
	defer response.Body.Close()

	responseContent, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	return responseContent, nil
}

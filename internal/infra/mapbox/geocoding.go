package mapbox

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"waypoints/internal/domain/entity"
	"waypoints/internal/domain/service"
	"waypoints/internal/errors"
)

const forwardGeocodePath = "/search/geocode/v6/forward"

type geocodeFeature struct {
	ID       string `json:"id"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Text           string `json:"text"`
	PlaceName      string `json:"place_name"`
	PlaceFormatted string `json:"place_formatted"`
	Properties     struct {
		Name        string `json:"name"`
		FullAddress string `json:"full_address"`
	} `json:"properties"`
}

type geocodeResponse struct {
	Features []geocodeFeature `json:"features"`
}

// geocodingClient implements service.Geocoder using the Mapbox forward
// geocoding endpoint.
type geocodingClient struct {
	client *Client
}

// NewGeocoder wraps the shared client as a Geocoder.
func NewGeocoder(client *Client) service.Geocoder {
	return &geocodingClient{client: client}
}

func (g *geocodingClient) Forward(ctx context.Context, query string) ([]entity.Place, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("autocomplete", "true")
	q.Set("limit", strconv.Itoa(g.client.geocodeLimit))

	body, err := g.client.get(ctx, forwardGeocodePath, q)
	if err != nil {
		return nil, err
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.Wrap(err, "decode geocode response")
	}

	places := make([]entity.Place, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		if len(f.Geometry.Coordinates) != 2 {
			continue
		}

		lon, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		if !entity.ValidCoordinate(lon, lat) {
			continue
		}

		places = append(places, entity.Place{
			ID:        f.ID,
			Title:     featureTitle(f),
			Longitude: lon,
			Latitude:  lat,
		})
	}

	return places, nil
}

// featureTitle picks the best display name a feature offers. The fields are
// tried from most to least descriptive; the raw query text is the fallback.
func featureTitle(f geocodeFeature) string {
	for _, candidate := range []string{
		f.Properties.FullAddress,
		f.PlaceName,
		f.PlaceFormatted,
		f.Properties.Name,
		f.Text,
	} {
		if candidate != "" {
			return candidate
		}
	}

	return ""
}

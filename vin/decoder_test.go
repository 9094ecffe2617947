package vin

import (
	"context"
	"fmt"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

const testVIN = "1HGBH41JXMN109186"

func newTestClient() *VPICClient {
	c := NewVPICClient("https://vpic.nhtsa.dot.gov/api")
	httpmock.ActivateNonDefault(c.httpClient)
	return c
}

func decodeURL(vin string) string {
	return fmt.Sprintf("https://vpic.nhtsa.dot.gov/api/vehicles/DecodeVin/%s?format=json", vin)
}

func TestVPICClientDecode(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", decodeURL(testVIN),
		httpmock.NewStringResponder(200, `{
			"Count": 7,
			"Message": "Results returned successfully",
			"Results": [
				{"Variable": "Make", "Value": "HONDA"},
				{"Variable": "Model", "Value": "Civic"},
				{"Variable": "Model Year", "Value": "2021"},
				{"Variable": "Trim", "Value": ""},
				{"Variable": "Body Class", "Value": "Sedan/Saloon 4-Door"},
				{"Variable": "Fuel Type - Primary", "Value": "Gasoline"},
				{"Variable": "Plant Country", "Value": null},
				{"Variable": "Error Code", "Value": "0"}
			]
		}`))

	info, err := c.Decode(context.Background(), testVIN)
	assert.NoError(t, err)
	assert.Equal(t, testVIN, info.VIN)
	assert.Equal(t, "HONDA", *info.Make)
	assert.Equal(t, "Civic", *info.Model)
	assert.Equal(t, 2021, *info.Year)
	assert.Equal(t, "Sedan/Saloon 4-Door", *info.BodyClass)
	assert.Equal(t, "Gasoline", *info.FuelType)

	// Empty strings and JSON nulls normalize to nil
	assert.Nil(t, info.Trim)
	assert.Nil(t, info.PlantCountry)
	assert.Nil(t, info.DriveType)
}

func TestVPICClientDecodeNoMatch(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	// vPIC answers 200 even for junk VINs, just with nothing usable in it
	httpmock.RegisterResponder("GET", decodeURL(testVIN),
		httpmock.NewStringResponder(200, `{
			"Count": 2,
			"Message": "Results returned successfully",
			"Results": [
				{"Variable": "Make", "Value": ""},
				{"Variable": "Error Code", "Value": "11"}
			]
		}`))

	info, err := c.Decode(context.Background(), testVIN)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Nil(t, info)
}

func TestVPICClientDecodeErrorCodeNotUsable(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	// An incomplete VIN can still come back with a guessed make and model,
	// flagged only by the non-zero error code
	httpmock.RegisterResponder("GET", decodeURL(testVIN),
		httpmock.NewStringResponder(200, `{
			"Count": 3,
			"Message": "Results returned successfully",
			"Results": [
				{"Variable": "Make", "Value": "HONDA"},
				{"Variable": "Model", "Value": "Civic"},
				{"Variable": "Error Code", "Value": "6"}
			]
		}`))

	info, err := c.Decode(context.Background(), testVIN)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Nil(t, info)
}

func TestVPICClientDecodeModelWithoutMake(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", decodeURL(testVIN),
		httpmock.NewStringResponder(200, `{
			"Count": 1,
			"Message": "Results returned successfully",
			"Results": [{"Variable": "Model", "Value": "Civic"}]
		}`))

	_, err := c.Decode(context.Background(), testVIN)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestVPICClientDecodeServerError(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", decodeURL(testVIN),
		httpmock.NewStringResponder(503, `upstream unavailable`))

	info, err := c.Decode(context.Background(), testVIN)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
	assert.Nil(t, info)
}

func TestVPICClientDecodeNetworkError(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", decodeURL(testVIN),
		httpmock.NewErrorResponder(fmt.Errorf("connection refused")))

	_, err := c.Decode(context.Background(), testVIN)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestVPICClientDecodeMalformedJSON(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", decodeURL(testVIN),
		httpmock.NewStringResponder(200, `<html>not json</html>`))

	_, err := c.Decode(context.Background(), testVIN)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestVPICClientDecodeCachesResults(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", decodeURL(testVIN),
		httpmock.NewStringResponder(200, `{
			"Count": 2,
			"Message": "Results returned successfully",
			"Results": [
				{"Variable": "Make", "Value": "HONDA"},
				{"Variable": "Model", "Value": "Civic"}
			]
		}`))

	first, err := c.Decode(context.Background(), testVIN)
	assert.NoError(t, err)
	second, err := c.Decode(context.Background(), testVIN)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestVPICClientDecodeFailuresNotCached(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", decodeURL(testVIN),
		httpmock.NewStringResponder(500, `boom`))

	_, err := c.Decode(context.Background(), testVIN)
	assert.Error(t, err)
	_, err = c.Decode(context.Background(), testVIN)
	assert.Error(t, err)

	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

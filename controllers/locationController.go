package controllers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var geocodeClient = &http.Client{Timeout: 10 * time.Second}

const nominatimURL = "https://nominatim.openstreetmap.org/reverse"

// ReverseGeocode proxies a lat/lng pair to the OpenStreetMap Nominatim
// service and returns its structured address.
func ReverseGeocode(c *gin.Context) {
	lat := c.Query("lat")
	lng := c.Query("lng")

	if lat == "" || lng == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude required"})
		return
	}

	query := url.Values{}
	query.Set("lat", lat)
	query.Set("lon", lng)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, nominatimURL+"?"+query.Encode(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
		return
	}
	// Nominatim requires an identifying User-Agent
	req.Header.Set("User-Agent", "CivicGuardApp/1.0")

	resp, err := geocodeClient.Do(req)
	if err != nil {
		log.WithError(err).Error("reverse geocode request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
		return
	}
	defer resp.Body.Close()

	var payload struct {
		Address map[string]interface{} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.WithError(err).Error("failed to decode reverse geocode response")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
		return
	}

	if len(payload.Address) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": payload.Address})
}

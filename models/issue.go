package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueType enum
type IssueType string

const (
	Pothole        IssueType = "Pothole"
	Garbage        IssueType = "Garbage"
	BrokenInfra    IssueType = "Broken Infrastructure"
	Sewage         IssueType = "Sewage"
	Drains         IssueType = "Drains"
	OtherIssueType IssueType = "Other"
)

// ValidIssueTypes maps every accepted issue type for request validation.
var ValidIssueTypes = map[string]bool{
	"Pothole": true, "Garbage": true, "Broken Infrastructure": true,
	"Sewage": true, "Drains": true, "Other": true,
}

// IssueStatus enum
type IssueStatus string

const (
	Pending  IssueStatus = "Pending"
	Verified IssueStatus = "Verified"
	Resolved IssueStatus = "Resolved"
)

// CanTransitionTo reports whether moving from s to next is a legal step.
// The workflow is strictly forward: Pending -> Verified -> Resolved.
func (s IssueStatus) CanTransitionTo(next IssueStatus) bool {
	switch s {
	case Pending:
		return next == Verified
	case Verified:
		return next == Resolved
	}
	return false
}

// Coordinates is an optional lat/lng pair attached to a location.
type Coordinates struct {
	Lat float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

// Location is the structured form of a reported address. Address always
// carries the original free-text input; the remaining fields are filled by
// the heuristic parser or by the client directly.
type Location struct {
	Address     string       `bson:"address" json:"address"`
	Street      string       `bson:"street,omitempty" json:"street,omitempty"`
	Area        string       `bson:"area,omitempty" json:"area,omitempty"`
	Landmark    string       `bson:"landmark,omitempty" json:"landmark,omitempty"`
	Suburb      string       `bson:"suburb,omitempty" json:"suburb,omitempty"`
	City        string       `bson:"city" json:"city"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

var imageURLPattern = regexp.MustCompile(`^https?://.+\.(jpg|jpeg|png|webp)$`)

// IsValidImageURL accepts an empty URL or one ending in an image extension.
func IsValidImageURL(u string) bool {
	if u == "" {
		return true
	}
	return imageURLPattern.MatchString(u)
}

// Issue represents a civic problem reported by a user.
type Issue struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Type         IssueType          `bson:"type" json:"type"`
	Description  string             `bson:"description" json:"description"`
	Location     Location           `bson:"location" json:"location"`
	ImageURL     *string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Confidence   int                `bson:"confidence" json:"confidence"`
	Priority     string             `bson:"priority" json:"priority"`
	Status       IssueStatus        `bson:"status" json:"status"`
	ReportedBy   primitive.ObjectID `bson:"reportedBy" json:"reportedBy"`
	RewardTxHash string             `bson:"rewardTxHash,omitempty" json:"rewardTxHash,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

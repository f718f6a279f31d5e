package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rowlokie/Civic-Guard/config"
	"github.com/rowlokie/Civic-Guard/models"
	authUtils "github.com/rowlokie/Civic-Guard/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Off-chain coin grants. The on-chain reward mirrors the report amount but
// is best-effort and never rolls back the off-chain grant.
const (
	reportReward  = 10
	verifyReward  = 5
	resolveReward = 10
)

// ReportIssue handles a multipart report submission: optional image upload,
// location parsing, persistence, and the dual off-chain/on-chain reward.
func ReportIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reporterID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	issueType := strings.TrimSpace(c.PostForm("type"))
	description := strings.TrimSpace(c.PostForm("description"))
	title := strings.TrimSpace(c.PostForm("title"))
	priority := strings.TrimSpace(c.PostForm("priority"))
	locationStr := c.PostForm("location")

	if issueType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Issue type is required"})
		return
	}
	if !models.ValidIssueTypes[issueType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue type"})
		return
	}
	if description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
		return
	}
	if len(description) > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description cannot exceed 500 characters"})
		return
	}
	if title == "" {
		title = issueType
	}
	switch priority {
	case "":
		priority = "medium"
	case "low", "medium", "high":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Optional image: staged to a temp file which is removed on every exit
	// path, success or failure.
	var imageURL *string
	if file, err := c.FormFile("image"); err == nil {
		if uploader == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload not configured"})
			return
		}

		tmpPath := filepath.Join(os.TempDir(), primitive.NewObjectID().Hex()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, tmpPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
			return
		}
		defer os.Remove(tmpPath)

		url, err := uploader.Upload(ctx, tmpPath, issueType)
		if err != nil {
			log.WithError(err).Error("image upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		imageURL = &url
	} else if raw := strings.TrimSpace(c.PostForm("imageUrl")); raw != "" {
		// Pre-hosted image URL instead of a file upload.
		if !models.IsValidImageURL(raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL must be a valid image link"})
			return
		}
		imageURL = &raw
	}

	location := parseLocationField(locationStr)

	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Type:        models.IssueType(issueType),
		Description: description,
		Location:    location,
		ImageURL:    imageURL,
		Confidence:  100,
		Priority:    priority,
		Status:      models.Pending,
		ReportedBy:  reporterID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	userCollection := config.GetCollection("users")
	issueCollection := config.GetCollection("issues")

	var reporter models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": reporterID}).Decode(&reporter); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if _, err := issueCollection.InsertOne(ctx, issue); err != nil {
		log.WithError(err).Error("failed to insert issue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	// Off-chain grant: atomic, unconditional on chain outcome.
	_, err = userCollection.UpdateByID(ctx, reporterID, bson.M{
		"$inc":  bson.M{"coins": reportReward},
		"$push": bson.M{"reports": issue.ID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		log.WithError(err).Error("failed to credit reporter")
	}

	// On-chain grant: best-effort, failure is logged and the report still
	// succeeds.
	if reporter.WalletAddress != "" {
		if txHash := grantOnChainReward(ctx, reporter.WalletAddress, reportReward); txHash != "" {
			issue.RewardTxHash = txHash
			_, err = issueCollection.UpdateByID(ctx, issue.ID, bson.M{
				"$set": bson.M{"rewardTxHash": txHash},
			})
			if err != nil {
				log.WithError(err).Error("failed to persist reward tx hash")
			}
		}
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Issue reported successfully", "issue": issue})
}

// parseLocationField accepts either a JSON-encoded location object or a
// free-text address run through the heuristic parser.
func parseLocationField(locationStr string) models.Location {
	trimmed := strings.TrimSpace(locationStr)
	if strings.HasPrefix(trimmed, "{") {
		var loc models.Location
		if err := json.Unmarshal([]byte(trimmed), &loc); err == nil {
			if loc.Address == "" {
				loc.Address = trimmed
			}
			if loc.City == "" {
				loc.City = authUtils.DefaultCity
			}
			return loc
		}
	}
	loc := authUtils.ParseLocation(trimmed)
	if loc.City == "" {
		loc.City = authUtils.DefaultCity
	}
	return loc
}

// grantOnChainReward sends the token reward and returns the tx hash, or ""
// when the ledger is unavailable or the transaction fails.
func grantOnChainReward(ctx context.Context, wallet string, amount int64) string {
	if ledger == nil {
		return ""
	}
	txHash, err := ledger.RewardCoins(ctx, wallet, amount)
	if err != nil {
		log.WithError(err).WithField("wallet", wallet).Error("blockchain reward failed")
		return ""
	}
	log.WithField("tx", txHash).Info("on-chain reward sent")
	return txHash
}

var regionDimensions = map[string]bool{
	"city": true, "area": true, "suburb": true, "street": true,
}

// GetAllIssues lists issues filtered by region, type and status. Absent or
// "all" filter values are no-ops. The reporter's name and email are joined
// into each result.
func GetAllIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	regionType := c.Query("regionType")
	regionName := c.Query("regionName")
	issueType := c.Query("type")
	status := c.Query("status")

	filter := bson.M{}

	if regionType != "" && regionName != "" {
		if !regionDimensions[regionType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region type"})
			return
		}
		filter["location."+regionType] = regionName
	}
	if issueType != "" && issueType != "all" {
		filter["type"] = issueType
	}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	issueCollection := config.GetCollection("issues")
	userCollection := config.GetCollection("users")

	cursor, err := issueCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	type issueWithReporter struct {
		models.Issue
		ReportedBy map[string]interface{} `json:"reportedBy"`
	}

	response := make([]issueWithReporter, 0, len(issues))
	for _, issue := range issues {
		reportedBy := map[string]interface{}{"id": issue.ReportedBy}

		var reporter models.User
		if err := userCollection.FindOne(ctx, bson.M{"_id": issue.ReportedBy}).Decode(&reporter); err == nil {
			reportedBy["name"] = reporter.Name
			reportedBy["email"] = reporter.Email
		}

		response = append(response, issueWithReporter{Issue: issue, ReportedBy: reportedBy})
	}

	c.JSON(http.StatusOK, response)
}

// GetRegions aggregates the distinct location values across all issues for
// populating filter dropdowns.
func GetRegions(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{
			"$group": bson.M{
				"_id":     nil,
				"cities":  bson.M{"$addToSet": "$location.city"},
				"areas":   bson.M{"$addToSet": "$location.area"},
				"suburbs": bson.M{"$addToSet": "$location.suburb"},
				"streets": bson.M{"$addToSet": "$location.street"},
			},
		},
		{
			"$project": bson.M{
				"_id":     0,
				"cities":  1,
				"areas":   1,
				"suburbs": 1,
				"streets": 1,
			},
		},
	}

	cursor, err := config.GetCollection("issues").Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch regions"})
		return
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode regions"})
		return
	}

	if len(results) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"cities": []string{}, "areas": []string{},
			"suburbs": []string{}, "streets": []string{},
		})
		return
	}

	c.JSON(http.StatusOK, results[0])
}

// VerifyIssue moves a Pending issue to Verified and credits the acting
// user. The transition is applied with a conditional update so a concurrent
// moderator cannot verify the same issue twice.
func VerifyIssue(c *gin.Context) {
	transitionIssue(c, models.Pending, models.Verified, verifyReward, true)
}

// ResolveIssue moves a Verified issue to Resolved and credits the acting
// user.
func ResolveIssue(c *gin.Context) {
	transitionIssue(c, models.Verified, models.Resolved, resolveReward, false)
}

func transitionIssue(c *gin.Context, from, to models.IssueStatus, reward int64, recordValidation bool) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	actorID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := config.GetCollection("issues")

	// Conditional update: only matches while the issue is still in the
	// expected state.
	var issue models.Issue
	err = issueCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": issueID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish missing issue from an illegal transition.
			var current models.Issue
			findErr := issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&current)
			if findErr == nil {
				if !current.Status.CanTransitionTo(to) {
					c.JSON(http.StatusConflict, gin.H{
						"error": "Cannot transition issue from " + string(current.Status) + " to " + string(to),
					})
					return
				}
				// Legal from the observed state, so another request won the
				// race for the same transition.
				c.JSON(http.StatusConflict, gin.H{"error": "Issue was updated concurrently"})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	update := bson.M{
		"$inc": bson.M{"coins": reward},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	if recordValidation {
		update["$push"] = bson.M{"validations": issue.ID}
	}
	if _, err := config.GetCollection("users").UpdateByID(ctx, actorID, update); err != nil {
		log.WithError(err).Error("failed to credit moderator")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue " + strings.ToLower(string(to)), "issue": issue})
}

// DeleteIssue removes an issue while it is still Pending. Only the reporter
// or an admin may delete it.
func DeleteIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	actorID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := config.GetCollection("issues")

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if issue.ReportedBy != actorID {
		var actor models.User
		err = config.GetCollection("users").FindOne(ctx, bson.M{"_id": actorID}).Decode(&actor)
		if err != nil || !actor.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this issue"})
			return
		}
	}

	if issue.Status != models.Pending {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only pending issues can be deleted"})
		return
	}

	// Conditional on status so a concurrent verify can't slip through.
	result, err := issueCollection.DeleteOne(ctx, bson.M{"_id": issueID, "status": models.Pending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only pending issues can be deleted"})
		return
	}

	_, err = config.GetCollection("users").UpdateByID(ctx, issue.ReportedBy, bson.M{
		"$pull": bson.M{"reports": issueID},
	})
	if err != nil {
		log.WithError(err).Error("failed to unlink deleted issue from reporter")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

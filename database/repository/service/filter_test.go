package serviceRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"citizenhub/models"
)

func TestBuildFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, buildFilter(ServiceFilter{}))
}

func TestBuildFilterSingleClause(t *testing.T) {
	assert.Equal(t, bson.M{"status": models.StatusActive}, buildFilter(ServiceFilter{Status: models.StatusActive}))
}

func TestBuildFilterCombined(t *testing.T) {
	f := buildFilter(ServiceFilter{
		Status:   models.StatusActive,
		Category: models.CategoryHealth,
		State:    "Tamil Nadu",
		Query:    "card (new)",
		Lang:     "ta",
	})
	and, ok := f["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 4)
	assert.Equal(t, bson.M{"category": models.CategoryHealth}, and[0])
	assert.Equal(t, bson.M{"status": models.StatusActive}, and[1])

	stateOr := and[2]["$or"].([]bson.M)
	assert.Equal(t, primitive.Regex{Pattern: "^Tamil Nadu$", Options: "i"}, stateOr[0]["states"])
	assert.Equal(t, models.JurisdictionCentral, stateOr[1]["jurisdiction"])

	queryOr := and[3]["$or"].([]bson.M)
	require.Len(t, queryOr, 4)
	rx := primitive.Regex{Pattern: `card \(new\)`, Options: "i"}
	assert.Equal(t, rx, queryOr[0]["shortName"])
	assert.Equal(t, rx, queryOr[3]["name.ta"])
}

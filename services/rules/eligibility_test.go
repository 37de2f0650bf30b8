package rules

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"citizenhub/models"
)

func f64(v float64) *float64 { return &v }
func boolPtr(v bool) *bool   { return &v }
func intPtr(v int) *int      { return &v }

func fixedEngine(now time.Time) *Engine {
	e := NewEngine(DefaultFeeAdjustments())
	e.Now = func() time.Time { return now }
	return e
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func criterion(t models.CriteriaType, method models.ValidationMethod) models.EligibilityCriterion {
	return models.EligibilityCriterion{
		CriteriaType:     t,
		Name:             models.MultilingualText{"en": string(t) + " check", "hi": string(t) + " जांच"},
		ValidationMethod: method,
	}
}

type EligibilitySuite struct {
	suite.Suite
	engine *Engine
}

func (s *EligibilitySuite) SetupTest() {
	s.engine = fixedEngine(day(2024, time.June, 15))
}

func TestEligibilitySuite(t *testing.T) {
	suite.Run(t, new(EligibilitySuite))
}

func (s *EligibilitySuite) TestNoCriteria() {
	v := s.engine.CheckEligibility(nil, models.UserProfile{}, "en")
	s.Equal(models.Eligible, v.Eligible)
	s.Equal("No eligibility criteria specified", v.Message)
	s.Empty(v.FailedCriteria)
	s.Empty(v.MissingData)
}

func (s *EligibilitySuite) TestAgeFromDateOfBirth() {
	dob := models.NewDate(2000, time.June, 15)
	profile := models.UserProfile{DateOfBirth: &dob}

	cases := []struct {
		now  time.Time
		want int
	}{
		{day(2024, time.June, 14), 23},
		{day(2024, time.June, 15), 24},
		{day(2024, time.June, 16), 24},
	}
	for _, tc := range cases {
		s.Run(tc.now.Format("2006-01-02"), func() {
			v, field, ok := resolveValue(criterion(models.CriteriaAge, models.MethodCustom), profile, tc.now)
			s.Require().True(ok)
			s.Equal("dateOfBirth", field)
			s.Equal(tc.want, v)
		})
	}
}

func (s *EligibilitySuite) TestAgeFallsBackToExplicitAge() {
	v, _, ok := resolveValue(criterion(models.CriteriaAge, models.MethodCustom), models.UserProfile{Age: intPtr(42)}, day(2024, 1, 1))
	s.Require().True(ok)
	s.Equal(42, v)
}

func (s *EligibilitySuite) TestRangeBoundaries() {
	c := criterion(models.CriteriaIncome, models.MethodRange)
	c.MinValue, c.MaxValue = f64(18), f64(60)

	cases := map[float64]bool{17: false, 18: true, 60: true, 61: false}
	for income, pass := range cases {
		v := s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Income: f64(income)}, "en")
		if pass {
			s.Equal(models.Eligible, v.Eligible, "income %v", income)
		} else {
			s.Equal(models.NotEligible, v.Eligible, "income %v", income)
			s.Require().Len(v.FailedCriteria, 1)
			s.Equal("between 18 and 60", v.FailedCriteria[0].Requirement)
		}
	}
}

func (s *EligibilitySuite) TestMethods() {
	s.Run("exact", func() {
		c := criterion(models.CriteriaIncome, models.MethodExact)
		c.MinValue = f64(100)
		s.Equal(models.Eligible, s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Income: f64(100)}, "").Eligible)
		s.Equal(models.NotEligible, s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Income: f64(101)}, "").Eligible)
	})
	s.Run("minimum and maximum", func() {
		lo := criterion(models.CriteriaAge, models.MethodMinimum)
		lo.MinValue = f64(18)
		hi := criterion(models.CriteriaAge, models.MethodMaximum)
		hi.MaxValue = f64(40)
		v := s.engine.CheckEligibility([]models.EligibilityCriterion{lo, hi}, models.UserProfile{Age: intPtr(41)}, "")
		s.Equal(models.NotEligible, v.Eligible)
		s.Require().Len(v.FailedCriteria, 1)
		s.Equal("at most 40", v.FailedCriteria[0].Requirement)
		s.Equal(41, v.FailedCriteria[0].UserValue)
	})
	s.Run("list compares as text", func() {
		c := criterion(models.CriteriaCategory, models.MethodList)
		c.AllowedValues = []string{"sc", "st", "obc"}
		s.Equal(models.Eligible, s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Category: "OBC"}, "").Eligible)
		v := s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Category: "general"}, "")
		s.Equal(models.NotEligible, v.Eligible)
		s.Equal("one of: sc, st, obc", v.FailedCriteria[0].Requirement)
	})
	s.Run("boolean", func() {
		c := criterion(models.CriteriaDisability, models.MethodBoolean)
		s.Equal(models.Eligible, s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{HasDisability: boolPtr(true)}, "").Eligible)
		s.Equal(models.NotEligible, s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{HasDisability: boolPtr(false)}, "").Eligible)
	})
	s.Run("custom always passes", func() {
		c := criterion(models.CriteriaOccupation, models.MethodCustom)
		s.Equal(models.Eligible, s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Occupation: "farmer"}, "").Eligible)
	})
	s.Run("non-numeric value fails numeric method", func() {
		c := criterion(models.CriteriaOther, models.MethodMinimum)
		c.MinValue = f64(2)
		c.CustomField = "landAcres"
		v := s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Custom: map[string]any{"landAcres": "lots"}}, "")
		s.Equal(models.NotEligible, v.Eligible)
		v = s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Custom: map[string]any{"landAcres": "2.5"}}, "")
		s.Equal(models.Eligible, v.Eligible)
	})
}

func (s *EligibilitySuite) TestOtherReadsCustomFields() {
	c := criterion(models.CriteriaOther, models.MethodBoolean)
	c.CustomField = "isFarmer"

	v := s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Custom: map[string]any{"isFarmer": true}}, "")
	s.Equal(models.Eligible, v.Eligible)

	v = s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{Custom: map[string]any{"other": "yes"}}, "")
	s.Equal(models.Eligible, v.Eligible)

	v = s.engine.CheckEligibility([]models.EligibilityCriterion{c}, models.UserProfile{}, "")
	s.Equal(models.EligibilityUnknown, v.Eligible)
	s.Equal([]models.MissingData{{Field: "custom.isFarmer", CriterionName: "other check"}}, v.MissingData)
}

func (s *EligibilitySuite) TestMissingDataIsUnknownNotFalse() {
	age := criterion(models.CriteriaAge, models.MethodMinimum)
	age.MinValue = f64(18)
	state := criterion(models.CriteriaResidence, models.MethodList)
	state.AllowedValues = []string{"Kerala"}

	v := s.engine.CheckEligibility([]models.EligibilityCriterion{age, state}, models.UserProfile{Age: intPtr(30)}, "en")
	s.Equal(models.EligibilityUnknown, v.Eligible)
	s.Equal("Insufficient information to determine eligibility", v.Message)
	s.Equal([]models.MissingData{{Field: "address.state", CriterionName: "residence check"}}, v.MissingData)

	raw, err := json.Marshal(v)
	s.Require().NoError(err)
	s.Contains(string(raw), `"eligible":"unknown"`)
}

func (s *EligibilitySuite) TestFailureWinsOverMissing() {
	age := criterion(models.CriteriaAge, models.MethodMinimum)
	age.MinValue = f64(18)
	gender := criterion(models.CriteriaGender, models.MethodList)
	gender.AllowedValues = []string{"female"}

	v := s.engine.CheckEligibility([]models.EligibilityCriterion{gender, age}, models.UserProfile{Age: intPtr(10)}, "hi")
	s.Equal(models.NotEligible, v.Eligible)
	s.Len(v.MissingData, 1)
	s.Equal("gender जांच", v.MissingData[0].CriterionName)
	s.Len(v.FailedCriteria, 1)
}

func (s *EligibilitySuite) TestOrderPreserved() {
	a := criterion(models.CriteriaGender, models.MethodList)
	a.AllowedValues = []string{"female"}
	b := criterion(models.CriteriaIncome, models.MethodMaximum)
	b.MaxValue = f64(1000)
	c := criterion(models.CriteriaOccupation, models.MethodList)
	c.AllowedValues = []string{"farmer"}
	d := criterion(models.CriteriaMarital, models.MethodList)
	d.AllowedValues = []string{"widowed"}

	p := models.UserProfile{Gender: "male", Income: f64(5000), Occupation: "weaver"}
	v := s.engine.CheckEligibility([]models.EligibilityCriterion{a, b, d, c}, p, "")
	s.Require().Len(v.FailedCriteria, 3)
	s.Equal(models.CriteriaGender, v.FailedCriteria[0].CriteriaType)
	s.Equal(models.CriteriaIncome, v.FailedCriteria[1].CriteriaType)
	s.Equal(models.CriteriaOccupation, v.FailedCriteria[2].CriteriaType)
	s.Equal("maritalStatus", v.MissingData[0].Field)
}

func (s *EligibilitySuite) TestIdempotent() {
	c := criterion(models.CriteriaIncome, models.MethodRange)
	c.MinValue = f64(1)
	c.MaxValue = f64(10)
	dob := models.NewDate(1990, time.March, 3)
	age := criterion(models.CriteriaAge, models.MethodMaximum)
	age.MaxValue = f64(30)
	criteria := []models.EligibilityCriterion{c, age}
	p := models.UserProfile{Income: f64(50), DateOfBirth: &dob}

	first, err := json.Marshal(s.engine.CheckEligibility(criteria, p, "en"))
	s.Require().NoError(err)
	second, err := json.Marshal(s.engine.CheckEligibility(criteria, p, "en"))
	s.Require().NoError(err)
	s.Equal(string(first), string(second))
}

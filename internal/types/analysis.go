// Package types provides type definitions for structured data used throughout the leadership report system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Level is the qualitative tier attached to a competency score.
type Level string

// Level tiers, lowest to highest.
const (
	LevelEmerging   Level = "Emerging"
	LevelDeveloping Level = "Developing"
	LevelStrong     Level = "Strong"
	LevelAdvanced   Level = "Advanced"
)

// Levels lists every tier in ascending order.
var Levels = []Level{LevelEmerging, LevelDeveloping, LevelStrong, LevelAdvanced}

// LevelForScore derives the tier for a 0-100 score.
func LevelForScore(score int) Level {
	switch {
	case score >= 85:
		return LevelAdvanced
	case score >= 75:
		return LevelStrong
	case score >= 60:
		return LevelDeveloping
	default:
		return LevelEmerging
	}
}

// MinCompetencies is the smallest competency count the report can lay out.
// Three is the fewest points that still close a radar polygon.
const MinCompetencies = 3

// AnalysisRecord is the fully resolved leadership assessment a report is drawn from.
// It is built once per request by the analysis builder and never mutated during layout.
type AnalysisRecord struct {
	LeadershipScore     int              `json:"leadershipScore" validate:"min=55,max=95"`
	LeadershipStage     string           `json:"leadershipStage"`
	ExecutiveSummary    string           `json:"executiveSummary"`
	KeyInsight          string           `json:"keyInsight"`
	NinetyDayOutcome    string           `json:"ninetyDayOutcome"`
	Competencies        []Competency     `json:"competencies" validate:"required,min=3,dive"`
	Archetype           Archetype        `json:"archetype"`
	TopGrowthAreas      []GrowthArea     `json:"topGrowthAreas"`
	BlindSpots          []string         `json:"blindSpots"`
	StrengthLevers      []string         `json:"strengthLevers"`
	StakeholderPlaybook []string         `json:"stakeholderPlaybook"`
	KPIs                []string         `json:"kpis"`
	FirstWeekPlan       []string         `json:"firstWeekPlan"`
	OperatingCadence    OperatingCadence `json:"operatingCadence"`
	MetricsDashboard    MetricsDashboard `json:"metricsDashboard"`
	DecisionMatrix      DecisionMatrix   `json:"decisionMatrix"`
	RiskRegister        []Risk           `json:"riskRegister"`
	TalentPlan          TalentPlan       `json:"talentPlan"`
	MeetingBlueprint    MeetingBlueprint `json:"meetingBlueprint"`
	Roadmap             Roadmap          `json:"roadmap"`
	CommunicationScript string           `json:"communicationScript"`
	CallAgenda          []string         `json:"callAgenda,omitempty"`
}

// Competency is one scored leadership dimension.
type Competency struct {
	Name  string `json:"name" validate:"required"`
	Score int    `json:"score" validate:"min=0,max=100"`
	Level Level  `json:"level" validate:"oneof=Emerging Developing Strong Advanced"`
}

// Archetype summarises the overall behavioural pattern.
type Archetype struct {
	Name        string   `json:"name"`
	Traits      []string `json:"traits"`
	Description string   `json:"description"`
}

// GrowthArea is one of the top development priorities.
type GrowthArea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionSteps []string `json:"actionSteps"`
}

// OperatingCadence groups recurring habits by frequency.
type OperatingCadence struct {
	Daily   []string `json:"daily"`
	Weekly  []string `json:"weekly"`
	Monthly []string `json:"monthly"`
}

// MetricsDashboard separates leading from lagging indicators.
type MetricsDashboard struct {
	LeadingIndicators []string `json:"leadingIndicators"`
	LaggingIndicators []string `json:"laggingIndicators"`
}

// DecisionMatrix holds the quick wins and longer strategic bets.
type DecisionMatrix struct {
	ImmediateWins []string `json:"immediateWins"`
	StrategicBets []string `json:"strategicBets"`
}

// Risk is one row of the risk register.
type Risk struct {
	Risk       string `json:"risk"`
	Impact     string `json:"impact"`
	Owner      string `json:"owner"`
	Mitigation string `json:"mitigation"`
}

// TalentPlan sorts team members into development tracks.
type TalentPlan struct {
	Accelerate []string `json:"accelerate"`
	Stabilize  []string `json:"stabilize"`
	Delegate   []string `json:"delegate"`
}

// Meeting describes one recurring meeting format.
type Meeting struct {
	Purpose string   `json:"purpose"`
	Cadence string   `json:"cadence"`
	Agenda  []string `json:"agenda"`
}

// MeetingBlueprint holds the three core meeting formats.
type MeetingBlueprint struct {
	Team        Meeting `json:"team"`
	Leadership  Meeting `json:"leadership"`
	Stakeholder Meeting `json:"stakeholder"`
}

// RoadmapPhase is one month of the 90-day plan.
type RoadmapPhase struct {
	Title   string   `json:"title"`
	Theme   string   `json:"theme"`
	Actions []string `json:"actions"`
}

// Roadmap is the three-phase 90-day plan.
type Roadmap struct {
	Month1 RoadmapPhase `json:"month1"`
	Month2 RoadmapPhase `json:"month2"`
	Month3 RoadmapPhase `json:"month3"`
}

// Phases returns the roadmap months in order.
func (r Roadmap) Phases() [3]RoadmapPhase {
	return [3]RoadmapPhase{r.Month1, r.Month2, r.Month3}
}

// Validate checks the structural preconditions the report layout depends on.
func (a *AnalysisRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

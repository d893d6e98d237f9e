package constants

// Points awarded per logged hour.
const (
	PointsProductive      = 10
	PointsEarlyBird       = 15
	PointsNightOwl        = 12
	PointsNeutral         = 2
	PointsUnproductive    = 0
	PointsPerLevel        = 100
	EarlyBirdStartHour    = 5
	EarlyBirdEndHour      = 8
	NightOwlStartHour     = 21
	NightOwlEndHour       = 24
	StreakLookbackDays    = 365
	ConsistencyWindowDays = 30
)

// Pattern classification thresholds
const (
	PeakPercentile    = 0.1
	GoodPercentile    = 0.3
	AveragePercentile = 0.7

	FallbackPeakThreshold    = 80.0
	FallbackGoodThreshold    = 60.0
	FallbackAverageThreshold = 40.0
)

// Insight rule thresholds
const (
	StableVarianceMax      = 15.0
	InconsistentVariance   = 30.0
	MorningStartHour       = 6
	MorningEndHour         = 11
	AfternoonStartHour     = 12
	AfternoonEndHour       = 17
	MaxInsights            = 5
	DefaultInsightDays     = 7
	DefaultDailyGoalHours  = 8
	MinDistinctActivities  = 5
	ConsistencyVarianceCap = 4.0
	StrengthRatio          = 0.6
	ImprovementRatio       = 0.3
	TimeOfDayRatioGap      = 0.2
	PeriodChangeThreshold  = 5.0
	LowLoggingPerDay       = 6.0
	HighLoggingPerDay      = 18.0
)

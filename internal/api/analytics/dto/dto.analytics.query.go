package analyticsdto

// Giá trị mặc định của query
const (
	DefaultDays       = 30
	DefaultReportType = "comprehensive"
	MaxDays           = 365
)

// AnalyticsQuery query cho users / sales / marketplace: ?days=30
type AnalyticsQuery struct {
	Days int `query:"days" validate:"min=1,max=365"` // Số ngày của cửa sổ, mặc định 30
}

// BusinessReportQuery query cho business-report: ?type=comprehensive&days=30
type BusinessReportQuery struct {
	Type string `query:"type" validate:"required,report_type"` // comprehensive | executive | financial | operational
	Days int    `query:"days" validate:"min=1,max=365"`
}

// PredictiveQuery query cho predictive: ?horizon_days=30
type PredictiveQuery struct {
	HorizonDays int `query:"horizon_days" validate:"min=1,max=365"`
}

package analyticsdto

// UserRegistrations đăng ký mới trong cửa sổ
type UserRegistrations struct {
	DailyRegistrations  []DailyCount     `json:"daily_registrations"`
	TotalNewUsers       int64            `json:"total_new_users"`
	RegistrationsByRole map[string]int64 `json:"registrations_by_role"`
	GrowthRate          float64          `json:"growth_rate"`
	PreviousPeriodUsers int64            `json:"previous_period_users"`
}

// UserActivity: "active" = tạo trong cửa sổ (chưa có dữ liệu phiên đăng nhập)
type UserActivity struct {
	ActiveUserIDs    []string         `json:"active_user_ids"`
	TotalActiveUsers int64            `json:"total_active_users"`
	ActivityByRole   map[string]int64 `json:"activity_by_role"`
	ActivityRate     float64          `json:"activity_rate"`
}

// EngagementMetrics mức tương tác trên mỗi user
type EngagementMetrics struct {
	ListingsPerUser  float64 `json:"listings_per_user"`
	TendersPerUser   float64 `json:"tenders_per_user"`
	MessagesPerUser  float64 `json:"messages_per_user"`
	TotalEngagements int64   `json:"total_engagements"`
	EngagementScore  float64 `json:"engagement_score"`
}

// RetentionAnalysis cohort = user đăng ký ở cửa sổ trước, retained = cohort còn hoạt động ở cửa sổ này
type RetentionAnalysis struct {
	CohortSize    int64   `json:"cohort_size"`
	RetainedUsers int64   `json:"retained_users"`
	RetentionRate float64 `json:"retention_rate"`
}

// LocationCount số user theo địa điểm
type LocationCount struct {
	Location string `json:"location"`
	Users    int64  `json:"users"`
}

// GeographicDistribution phân bố user theo địa điểm
type GeographicDistribution struct {
	UsersByLocation map[string]int64 `json:"users_by_location"`
	TopLocations    []LocationCount  `json:"top_locations"`
	TotalLocations  int              `json:"total_locations"`
}

// UserSummary các số headline của báo cáo user
type UserSummary struct {
	TotalUsers      int64   `json:"total_users"`
	NewUsers        int64   `json:"new_users"`
	ActiveUsers     int64   `json:"active_users"`
	GrowthRate      float64 `json:"growth_rate"`
	EngagementScore float64 `json:"engagement_score"`
	RetentionRate   float64 `json:"retention_rate"`
}

// UserReport báo cáo user analytics
type UserReport struct {
	Period                 Period                         `json:"period"`
	UserRegistrations      Metric[UserRegistrations]      `json:"user_registrations"`
	UserActivity           Metric[UserActivity]           `json:"user_activity"`
	EngagementMetrics      Metric[EngagementMetrics]      `json:"engagement_metrics"`
	RetentionAnalysis      Metric[RetentionAnalysis]      `json:"retention_analysis"`
	GeographicDistribution Metric[GeographicDistribution] `json:"geographic_distribution"`
	Summary                UserSummary                    `json:"summary"`
}

package cmsdto

import cmsmodels "marketplace_analytics/internal/api/cms/models"

// MenuQuery query cho GET /cms/menu?role=seller
type MenuQuery struct {
	Role string `query:"role" validate:"user_role"` // rỗng = guest
}

// MenuResponse menu đã lọc theo role
type MenuResponse struct {
	Role  string               `json:"role"`
	Items []cmsmodels.MenuItem `json:"items"`
}

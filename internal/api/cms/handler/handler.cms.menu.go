// Package cmshdl chứa HTTP handler cho cấu hình CMS.
package cmshdl

import (
	"context"

	"github.com/gofiber/fiber/v3"

	basehdl "marketplace_analytics/internal/api/base/handler"
	cmsdto "marketplace_analytics/internal/api/cms/dto"
	cmsmodels "marketplace_analytics/internal/api/cms/models"
	cmssvc "marketplace_analytics/internal/api/cms/service"
	"marketplace_analytics/internal/global"
)

// MenuProvider trả menu theo role (MenuService cài đặt)
type MenuProvider interface {
	GetMenuForRole(ctx context.Context, role string) ([]cmsmodels.MenuItem, error)
}

// MenuHandler xử lý API menu
type MenuHandler struct {
	Service MenuProvider
}

// NewMenuHandler tạo handler
func NewMenuHandler(svc MenuProvider) *MenuHandler {
	return &MenuHandler{Service: svc}
}

// HandleGetMenu xử lý GET /cms/menu?role=seller
func (h *MenuHandler) HandleGetMenu(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var q cmsdto.MenuQuery
		if err := c.Bind().Query(&q); err != nil {
			return basehdl.ValidationError(c, err)
		}
		if err := global.Validate.Struct(q); err != nil {
			return basehdl.ValidationError(c, err)
		}

		items, err := h.Service.GetMenuForRole(c.Context(), q.Role)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, cmsdto.MenuResponse{Role: cmssvc.NormalizeRole(q.Role), Items: items}, nil)
	})
}

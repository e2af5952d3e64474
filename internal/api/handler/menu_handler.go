package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
)

// MenuResolver serves the role-scoped menu read. Backed by the caching
// resolver, not the raw repository, so the hot path stays off the database.
type MenuResolver interface {
	Visible(ctx context.Context, roleID int) ([]domain.Menu, error)
}

type MenuHandler struct {
	service  ports.MenuService
	resolver MenuResolver
}

func NewMenuHandler(service ports.MenuService, resolver MenuResolver) *MenuHandler {
	return &MenuHandler{service: service, resolver: resolver}
}

type menuRequest struct {
	Name    string `json:"name" validate:"required"`
	Path    string `json:"path" validate:"required"`
	Icon    string `json:"icon"`
	RoleIDs []int  `json:"roleIds"`
}

type submenuRequest struct {
	Name string `json:"name" validate:"required"`
	Path string `json:"path" validate:"required"`
	Icon string `json:"icon"`
}

// List returns the whole menu tree for the management screen.
//
// @Summary      List menus
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Menu
// @Router       /menus [get]
func (h *MenuHandler) List(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	menus, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menus)
}

// VisibleByRole returns the navigation for one role.
//
// @Summary      List menus visible to a role
// @Tags         menus
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Role id"
// @Success      200  {array}  domain.Menu
// @Router       /menus/role/{id} [get]
func (h *MenuHandler) VisibleByRole(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	roleID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	menus, err := h.resolver.Visible(c.Request().Context(), roleID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menus)
}

// Create adds a menu.
//
// @Summary      Create a menu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      menuRequest  true  "Menu details"
// @Success      201   {object}  domain.Menu
// @Router       /menus [post]
func (h *MenuHandler) Create(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req menuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	menu, err := h.service.Create(c.Request().Context(), ports.MenuInput{
		Name: req.Name, Path: req.Path, Icon: req.Icon, RoleIDs: req.RoleIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, menu)
}

// Update edits a menu.
//
// @Summary      Update a menu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Menu id"
// @Param        body  body      menuRequest  true  "Menu details"
// @Success      200   {object}  domain.Menu
// @Failure      404   {object}  map[string]string
// @Router       /menus/{id} [put]
func (h *MenuHandler) Update(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req menuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	menu, err := h.service.Update(c.Request().Context(), id, ports.MenuInput{
		Name: req.Name, Path: req.Path, Icon: req.Icon, RoleIDs: req.RoleIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// Delete removes a menu and its submenus.
//
// @Summary      Delete a menu
// @Tags         menus
// @Security     BearerAuth
// @Param        id  path  int  true  "Menu id"
// @Success      204  "menu removed"
// @Failure      404  {object}  map[string]string
// @Router       /menus/{id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddSubmenu nests a new entry under a menu.
//
// @Summary      Add a submenu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Parent menu id"
// @Param        body  body      submenuRequest  true  "Submenu details"
// @Success      201   {object}  domain.Submenu
// @Failure      404   {object}  map[string]string
// @Router       /menus/{id}/submenus [post]
func (h *MenuHandler) AddSubmenu(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	menuID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req submenuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sub, err := h.service.AddSubmenu(c.Request().Context(), menuID, ports.SubmenuInput{
		Name: req.Name, Path: req.Path, Icon: req.Icon,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// UpdateSubmenu edits a submenu through its owning menu.
//
// @Summary      Update a submenu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Submenu id"
// @Param        body  body      submenuRequest  true  "Submenu details"
// @Success      200   {object}  domain.Submenu
// @Failure      404   {object}  map[string]string
// @Router       /submenus/{id} [put]
func (h *MenuHandler) UpdateSubmenu(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req submenuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sub, err := h.service.UpdateSubmenu(c.Request().Context(), id, ports.SubmenuInput{
		Name: req.Name, Path: req.Path, Icon: req.Icon,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}

// DeleteSubmenu removes a submenu.
//
// @Summary      Delete a submenu
// @Tags         menus
// @Security     BearerAuth
// @Param        id  path  int  true  "Submenu id"
// @Success      204  "submenu removed"
// @Failure      404  {object}  map[string]string
// @Router       /submenus/{id} [delete]
func (h *MenuHandler) DeleteSubmenu(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteSubmenu(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

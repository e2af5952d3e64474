package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const pageShell = `<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Painel</title>
<link rel="stylesheet" href="/assets/app.css">
</head>
<body>
<div id="root"></div>
<script src="/assets/app.js" defer></script>
</body>
</html>
`

// PageHandler serves the dashboard shell for every page navigation. The
// route guard has already decided the navigation is allowed; the shell
// boots the dashboard, which then talks to the API under /api.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Shell(c echo.Context) error {
	return c.HTML(http.StatusOK, pageShell)
}

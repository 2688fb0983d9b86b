package controller

import (
	appcontext "github.com/sovanara/cropbox/internal/app_context"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index    *IndexController
	Document *DocumentController
	File     *FileController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:    &IndexController{baseController: bc},
		Document: &DocumentController{baseController: bc},
		File:     &FileController{baseController: bc},
	}
}

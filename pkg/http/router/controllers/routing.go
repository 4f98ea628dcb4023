package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/railmapper/railpath/pkg/geo"
	helper "github.com/railmapper/railpath/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type pathfinderAPI struct {
	pathfinderService PathfinderService
	log               *zap.Logger
}

func New(pathfinderService PathfinderService, log *zap.Logger) *pathfinderAPI {
	return &pathfinderAPI{
		pathfinderService: pathfinderService,
		log:               log,
	}
}

func (api *pathfinderAPI) Routes(group *helper.RouteGroup) {
	group.GET("/findPath", api.findPath)
	group.GET("/findPathFromCoordinates", api.findPathFromCoordinates)
	group.GET("/routePathBetweenStations", api.routePathBetweenStations)
}

func (api *pathfinderAPI) findPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request findPathRequest

	query := r.URL.Query()
	request.StartID = query.Get("start_id")
	request.EndID = query.Get("end_id")

	if !api.validateRequest(w, r, request) {
		return
	}

	result, err := api.pathfinderService.FindPath(r.Context(), request.StartID, request.EndID)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPathResponse(result)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *pathfinderAPI) findPathFromCoordinates(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request findPathFromCoordinatesRequest
		err     error
	)

	query := r.URL.Query()

	request.StartLat, err = strconv.ParseFloat(query.Get("start_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lat is required and must be a valid float"))
		return
	}
	request.StartLon, err = strconv.ParseFloat(query.Get("start_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("start_lon is required and must be a valid float"))
		return
	}
	request.EndLat, err = strconv.ParseFloat(query.Get("end_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("end_lat is required and must be a valid float"))
		return
	}
	request.EndLon, err = strconv.ParseFloat(query.Get("end_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("end_lon is required and must be a valid float"))
		return
	}

	if !api.validateRequest(w, r, request) {
		return
	}

	result, err := api.pathfinderService.FindPathFromCoordinates(r.Context(),
		geo.NewCoordinate(request.StartLat, request.StartLon),
		geo.NewCoordinate(request.EndLat, request.EndLon))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPathResponse(result)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *pathfinderAPI) routePathBetweenStations(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request routePathRequest

	query := r.URL.Query()
	request.FromStation = query.Get("from")
	request.ToStation = query.Get("to")
	request.ViaStations = query["via"]

	if !api.validateRequest(w, r, request) {
		return
	}

	plan, err := api.pathfinderService.FindRoutePathBetweenStations(r.Context(),
		request.FromStation, request.ToStation, request.ViaStations)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRoutePlanResponse(plan)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *pathfinderAPI) validateRequest(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

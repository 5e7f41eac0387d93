package http

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
)

type endpoint struct {
	apiVersion  string
	middlewares []echo.MiddlewareFunc
	groups      []*apiGroup
}

type apiGroup struct {
	prefix      string
	middlewares []echo.MiddlewareFunc
	routes      []*route
}

type route struct {
	method      string
	path        string
	handler     echo.HandlerFunc
	middlewares []echo.MiddlewareFunc
}

func v1Endpoint(
	UserHandler *UserHandler,
	ProgressHandler *ProgressHandler,
	ProgressSocket echo.HandlerFunc,
	jwtMiddleware echo.MiddlewareFunc,
	refreshMiddleware echo.MiddlewareFunc,
	requestIDMiddleware echo.MiddlewareFunc,
	traceLoggerMiddleware echo.MiddlewareFunc,
) *endpoint {
	return &endpoint{
		apiVersion:  "api/v1",
		middlewares: []echo.MiddlewareFunc{requestIDMiddleware, traceLoggerMiddleware},
		groups: []*apiGroup{
			{
				prefix: "/user",
				routes: []*route{
					{"POST", "/login", UserHandler.HandleSignIn, nil},
					{"PUT", "/sign-out", UserHandler.HandleSignOut, nil},
					{"POST", "/sign-up", UserHandler.HandleSignUp, nil},
					{"GET", "/exists", UserHandler.HandleUserExists, nil},
				},
			},
			{
				prefix:      "/courses",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware},
				routes: []*route{
					{"GET", "/:course_id/progress", ProgressHandler.HandleGetCourseProgress, nil},
					{"GET", "/:course_id/lessons", ProgressHandler.HandleGetLessons, nil},
					{"GET", "/:course_id/lessons/:lesson_id", ProgressHandler.HandleGetLesson, nil},
					{"PUT", "/:course_id/lessons/:lesson_id/completion", ProgressHandler.HandleToggleLesson, nil},
					{"GET", "/:course_id/quizzes/next", ProgressHandler.HandleGetNextQuiz, nil},
				},
			},
			{
				prefix:      "/ws",
				middlewares: []echo.MiddlewareFunc{jwtMiddleware},
				routes: []*route{
					{"GET", "/progress", ProgressSocket, nil},
				},
			},
		},
	}
}

func createEndpoint(app *echo.Echo, def *endpoint) {
	type RESTMethod func(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route

	var root *echo.Group
	if strings.HasPrefix(def.apiVersion, "/") {
		root = app.Group(def.apiVersion, def.middlewares...)
	} else {
		root = app.Group("/"+def.apiVersion, def.middlewares...)
	}

	for _, group := range def.groups {
		echoGroup := root.Group(group.prefix, group.middlewares...)
		for _, api := range group.routes {
			var method RESTMethod
			switch api.method {
			case "GET":
				method = echoGroup.GET
			case "POST":
				method = echoGroup.POST
			case "PUT":
				method = echoGroup.PUT
			case "DELETE":
				method = echoGroup.DELETE
			default:
				panic(fmt.Errorf("createEndpoint: unknown method %s", api.method))
			}
			method(api.path, api.handler, api.middlewares...)
		}
	}
}

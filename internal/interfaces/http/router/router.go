// Package router mounts the HTTP handlers under the versioned API prefix.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is anything that can attach routes to a gin group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects registrars and mounts them under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.apiVersion = version }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every registrar. Call it once, after all Register calls.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// DomainGroup is a declarative set of routes for one resource. Middleware
// added with Use applies to this group and its subgroups, not to the parent.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*DomainGroup
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method, path, handlers})
	return dg
}

func (dg *DomainGroup) GET(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, path, h...)
}

func (dg *DomainGroup) POST(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, path, h...)
}

func (dg *DomainGroup) PUT(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, path, h...)
}

func (dg *DomainGroup) DELETE(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, path, h...)
}

// Group nests a child group under this group's prefix
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	child := NewDomainGroup(name, prefix)
	dg.children = append(dg.children, child)
	return child
}

func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, child := range dg.children {
		child.RegisterRoutes(group)
	}
}

// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter builds the service router.
//
// Description:
//
//	Mounts the two scoring operations under /v1/score, plus health
//	and Prometheus metrics endpoints. OTel tracing middleware wraps
//	every route.
//
// Inputs:
//
//	h - The handlers.
//	serviceName - Reported in trace spans.
//
// Outputs:
//
//	*gin.Engine - The configured router; caller runs it.
func NewRouter(h *Handlers, serviceName string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	v1 := router.Group("/v1/score")
	{
		v1.POST("/consistency", h.HandleConsistency)
		v1.POST("/gaming", h.HandleGaming)
	}

	router.GET("/healthz", h.HandleHealthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

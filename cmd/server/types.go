package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kalustehaku/server/catalog/products"
	"github.com/kalustehaku/server/internal/config"
	"github.com/kalustehaku/server/internal/jobs"
	"github.com/kalustehaku/server/internal/llm"
	"github.com/kalustehaku/server/internal/retriever"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	config      *config.Config
	productRepo *products.Repository
	services    *Services
	router      *gin.Engine
}

// holds all external service clients
type Services struct {
	LLM       llm.LLM
	Retriever *retriever.Client
	Jobs      *jobs.Service
}

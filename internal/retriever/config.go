package retriever

import (
	"github.com/lc4490/rmp-rag/internal/config"
)

// derives backend configuration from the application config
func NewConfig(cfg *config.Config) *RetrieverConfig {
	return &RetrieverConfig{
		Backend:           cfg.VectorBackend,
		PineconeAPIKey:    cfg.PineconeKey,
		PineconeIndex:     cfg.PineconeIndex,
		PineconeNamespace: cfg.PineconeNamespace,
		QdrantURL:         cfg.QdrantURL,
		QdrantAPIKey:      cfg.QdrantKey,
		QdrantCollection:  cfg.QdrantCollection,
		DatabaseURL:       cfg.DatabaseURL,
		PGVectorTable:     cfg.PGVectorTable,
		ChromemPath:       cfg.ChromemPath,
		ChromemCollection: cfg.ChromemCollection,
	}
}

package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/meshlens/meshlens/internal/config"
	"github.com/meshlens/meshlens/internal/logger"
	"github.com/meshlens/meshlens/pkg/analysis"
	"github.com/meshlens/meshlens/pkg/assets"
	"github.com/meshlens/meshlens/pkg/geom"
	"github.com/meshlens/meshlens/pkg/kernel"
	"github.com/meshlens/meshlens/pkg/kernel/sdfx"
	"github.com/meshlens/meshlens/pkg/lod"
	"github.com/meshlens/meshlens/pkg/mesh"
	"github.com/meshlens/meshlens/pkg/model"
	"github.com/meshlens/meshlens/pkg/rules"
)

// App is the Wails backend. It exposes the inspection operations to the
// frontend via bindings.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	kernel kernel.Kernel
	rules  *rules.Engine
}

// NewApp creates a new App with the sdfx reference-solid kernel.
func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		kernel: sdfx.New(),
		rules:  rules.NewEngineWithTimeout(cfg.Rules.Timeout),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// CalculateMeshStats computes aggregate statistics for a raw triangle mesh.
func (a *App) CalculateMeshStats(vertices []float32, indices []uint32) (*analysis.MeshStats, error) {
	m := &mesh.Mesh{Vertices: vertices, Indices: indices}
	stats, err := analysis.ComputeStats(m)
	if err != nil {
		logger.Log.Warn("mesh stats rejected", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

// GenerateLod plans LOD levels for a raw triangle mesh. An empty ratio
// list falls back to the configured reduction ladder.
func (a *App) GenerateLod(vertices []float32, indices []uint32, ratios []float32) (*lod.Plan, error) {
	if len(ratios) == 0 {
		ratios = a.cfg.Lod.Ratios
	}
	m := &mesh.Mesh{Vertices: vertices, Indices: indices}
	plan, err := lod.PlanLevels(m, ratios)
	if err != nil {
		logger.Log.Warn("lod planning rejected", zap.Error(err))
		return nil, err
	}
	return plan, nil
}

// AnalyzeTopology runs the connectivity queries on a raw triangle mesh.
// A non-positive epsilon falls back to the configured clustering default.
// Empty input is not an error here: it yields zero counts.
func (a *App) AnalyzeTopology(vertices []float32, indices []uint32, epsilon float32) *analysis.ConnectivityResult {
	if epsilon <= 0 {
		epsilon = a.cfg.Analysis.ClusterEpsilon
	}
	m := &mesh.Mesh{Vertices: vertices, Indices: indices}
	return analysis.AnalyzeTopology(m, epsilon)
}

// AnalyzeModel inspects a GLTF/GLB container on disk.
func (a *App) AnalyzeModel(path string) (*model.Analysis, error) {
	result, err := model.AnalyzeFile(path)
	if err != nil {
		logger.Log.Error("model analysis failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	logger.Log.Info("model analyzed",
		zap.String("path", path),
		zap.Int("meshes", result.MeshCount),
		zap.Int("vertices", result.VertexCount))
	return result, nil
}

// OptimizedMeshResult reports GPU-optimization metrics. The values are
// placeholder estimates until a meshoptimizer-style collaborator is wired
// in; only the counts are real.
type OptimizedMeshResult struct {
	OriginalVertexCount  int     `json:"originalVertexCount"`
	OptimizedVertexCount int     `json:"optimizedVertexCount"`
	CacheHitsBefore      float32 `json:"cacheHitsBefore"`
	CacheHitsAfter       float32 `json:"cacheHitsAfter"`
	OverdrawBefore       float32 `json:"overdrawBefore"`
	OverdrawAfter        float32 `json:"overdrawAfter"`
}

// OptimizeMesh reports estimated vertex-cache and overdraw metrics for a
// mesh. Actual buffer reordering is delegated to an external optimizer.
func (a *App) OptimizeMesh(vertices []float32, indices []uint32) (*OptimizedMeshResult, error) {
	m := &mesh.Mesh{Vertices: vertices, Indices: indices}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &OptimizedMeshResult{
		OriginalVertexCount:  m.VertexCount(),
		OptimizedVertexCount: m.VertexCount(),
		CacheHitsBefore:      0.5,
		CacheHitsAfter:       0.85,
		OverdrawBefore:       1.5,
		OverdrawAfter:        1.1,
	}, nil
}

// ListStorageAssets lists asset directories under the given storage root,
// falling back to the configured root when path is empty.
func (a *App) ListStorageAssets(path string) ([]assets.StorageAsset, error) {
	if path == "" {
		path = a.cfg.Storage.Root
	}
	found, err := assets.ScanStorage(path)
	if err != nil {
		logger.Log.Error("storage scan failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	if found == nil {
		found = []assets.StorageAsset{}
	}
	return found, nil
}

// GetFileInfo returns metadata for a single file or directory.
func (a *App) GetFileInfo(path string) (*assets.FileInfo, error) {
	return assets.Stat(path)
}

// ReadFileChunk reads a bounded byte range from a file, for streaming
// model data to the frontend viewer.
func (a *App) ReadFileChunk(path string, offset, length int64) ([]byte, error) {
	return assets.ReadChunk(path, offset, length)
}

// ReferenceSolid tessellates a named reference solid ("box", "cylinder",
// "sphere") for the viewer's scale overlay. Dimensions x, y, z are
// interpreted per shape: box edge lengths, cylinder height/radius, sphere
// radius.
func (a *App) ReferenceSolid(shape string, x, y, z float64) (*mesh.Mesh, error) {
	var solid kernel.Solid
	switch shape {
	case "box":
		solid = a.kernel.Box(x, y, z)
	case "cylinder":
		solid = a.kernel.Cylinder(x, y, 32)
	case "sphere":
		solid = a.kernel.Sphere(x)
	default:
		return nil, &mesh.ValidationError{Reason: "unknown reference shape " + shape}
	}

	m, err := a.kernel.ToMesh(solid)
	if err != nil {
		logger.Log.Error("reference solid tessellation failed", zap.String("shape", shape), zap.Error(err))
		return nil, err
	}
	m.Name = shape
	return m, nil
}

// CheckRules runs an acceptance-check script against a raw triangle mesh.
// The report is built from a fresh stats and topology pass so checks always
// see current numbers.
func (a *App) CheckRules(source string, vertices []float32, indices []uint32, epsilon float32) (*rules.CheckResult, error) {
	if epsilon <= 0 {
		epsilon = a.cfg.Analysis.ClusterEpsilon
	}
	m := &mesh.Mesh{Vertices: vertices, Indices: indices}

	rep := &rules.Report{}
	if stats, err := analysis.ComputeStats(m); err == nil {
		rep.Stats = stats
	}
	if !m.IsEmpty() {
		topo := analysis.NewTopology(m)
		bmin, bmax := topo.CalculateBounds()
		rep.Connectivity = analysis.AnalyzeTopology(m, epsilon)
		rep.Bounds = boundsOf(bmin, bmax)
	}

	result, err := a.rules.Check(source, rep)
	if err != nil {
		logger.Log.Warn("rules check failed", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func boundsOf(bmin, bmax geom.Vec3) *geom.Bounds {
	return &geom.Bounds{Min: bmin, Max: bmax}
}

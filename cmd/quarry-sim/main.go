// quarry-sim exercises the vertex transform stage end to end on the CPU: it
// builds every pipeline variant, validates the shader templates, and runs the
// main and shadow passes over a generated mesh through the worker pool.
package main

import (
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/quarry-engine/quarry/common"
	"github.com/quarry-engine/quarry/engine/camera"
	"github.com/quarry-engine/quarry/engine/light"
	"github.com/quarry-engine/quarry/engine/meshstage"
	"github.com/quarry-engine/quarry/engine/model"
	"github.com/quarry-engine/quarry/engine/renderer/pipeline"
	"github.com/quarry-engine/quarry/engine/skinning"
	"github.com/quarry-engine/quarry/internal/config"
	"github.com/quarry-engine/quarry/internal/logger"
	"go.uber.org/zap"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		logger.New().Error("config load failed", zap.Error(err))
		os.Exit(1)
	}

	opts := []logger.LoggerOption{logger.WithLevel(logger.ParseLevel(cfg.Logging.Level))}
	if cfg.Logging.LogFile != "" {
		opts = append(opts, logger.WithFile(cfg.Logging.LogFile))
	}
	log := logger.New(opts...)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	cam := camera.NewCamera(
		camera.WithPosition(0, 10, 25),
		camera.WithTarget(0, 0, 0),
		camera.WithFov(cfg.Renderer.FovDegrees*math32.Pi/180),
		camera.WithAspect(cfg.Renderer.AspectRatio),
		camera.WithClipPlanes(cfg.Renderer.NearPlane, cfg.Renderer.FarPlane),
	)

	sun := light.NewDirectionalLight(
		light.WithDirection(0.5, -1, 0.3),
		light.WithShadowExtent(cfg.Shadow.HalfExtent),
		light.WithShadowClipPlanes(cfg.Shadow.NearPlane, cfg.Shadow.FarPlane),
		light.WithShadowBias(cfg.Shadow.Bias, cfg.Shadow.NormalBiasScale),
		light.WithShadowMapResolution(int(cfg.Shadow.Resolution)),
	)
	shadowData := sun.ShadowData(0, 0, 0)

	// Every pass/feature combination must validate before any of them is used.
	for _, key := range pipeline.AllStageKeys() {
		start := time.Now()
		p, err := pipeline.NewStagePipeline(key)
		if err != nil {
			return err
		}
		log.Info("pipeline variant ready",
			zap.String("key", p.PipelineKey()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	vertices, tangentVertices := generateGridMesh(64)
	skinnedVertices := attachJoints(vertices)
	palette := wavePalette()

	mainPass := meshstage.NewMainPass(meshstage.WithViewProjection(cam.ViewProjectionMatrix()))
	shadowPass := meshstage.NewShadowPass(meshstage.WithLightViewProjection(shadowData.LightVP))
	batch := meshstage.NewBatchTransformer(cfg.Batch.Workers)

	for i := 0; i < cfg.Renderer.InstanceCount; i++ {
		instance := instanceAt(i)

		start := time.Now()
		lit := batch.MainRigid(mainPass, vertices, instance)
		litTangent := batch.MainRigidTangent(mainPass, tangentVertices, instance)
		depth := batch.ShadowRigid(shadowPass, vertices, instance)
		log.Debug("rigid instance transformed",
			zap.Int("instance", i),
			zap.Int("vertices", len(lit)+len(litTangent)),
			zap.Int("shadow_vertices", len(depth)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	start := time.Now()
	litSkinned := batch.MainSkinned(mainPass, skinnedVertices, palette)
	depthSkinned := batch.ShadowSkinned(shadowPass, skinnedVertices, instanceAt(0), palette)
	log.Info("skinned mesh transformed",
		zap.Int("vertices", len(litSkinned)),
		zap.Int("shadow_vertices", len(depthSkinned)),
		zap.Duration("elapsed", time.Since(start)),
	)

	log.Info("simulation complete",
		zap.Int("instances", cfg.Renderer.InstanceCount),
		zap.Int("mesh_vertices", len(vertices)),
	)
	return nil
}

// generateGridMesh builds an n×n vertex grid on the XZ plane with upward
// normals, in both the plain and tangent-carrying layouts.
func generateGridMesh(n int) ([]model.GPUVertex, []model.GPUTangentVertex) {
	vertices := make([]model.GPUVertex, 0, n*n)
	tangentVertices := make([]model.GPUTangentVertex, 0, n*n)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			u := float32(x) / float32(n-1)
			v := float32(z) / float32(n-1)
			vert := model.GPUVertex{
				Position: [3]float32{(u - 0.5) * 20, 0, (v - 0.5) * 20},
				Normal:   [3]float32{0, 1, 0},
				UV:       [2]float32{u, v},
			}
			vertices = append(vertices, vert)
			tangentVertices = append(tangentVertices, model.GPUTangentVertex{
				GPUVertex: vert,
				Tangent:   [4]float32{1, 0, 0, 1},
			})
		}
	}
	return vertices, tangentVertices
}

// attachJoints assigns each vertex a 50/50 blend of two joints so the skinned
// path exercises actual palette blending.
func attachJoints(vertices []model.GPUVertex) []model.GPUSkinnedVertex {
	out := make([]model.GPUSkinnedVertex, len(vertices))
	for i, v := range vertices {
		out[i] = model.GPUSkinnedVertex{
			GPUVertex:    v,
			JointIndices: [4]uint32{0, 1, 0, 0},
			JointWeights: [4]float32{0.5, 0.5, 0, 0},
		}
	}
	return out
}

// wavePalette returns an identity palette with joint 1 lifted on Y, which
// bends the blended mesh upward.
func wavePalette() *skinning.JointPalette {
	p := &skinning.JointPalette{}
	p.SetIdentity()
	p.Joints[1][13] = 4 // translate Y
	return p
}

// instanceAt places instance i on a circle around the origin with a slow
// per-instance rotation and mild scale variation.
func instanceAt(i int) model.GPUInstanceTransform {
	angle := float32(i) * 0.4
	radius := float32(30)
	scale := 1 + 0.1*float32(i%3)
	var m [16]float32
	common.BuildModelMatrix(m[:],
		radius*math32.Cos(angle), 0, radius*math32.Sin(angle),
		0, angle, 0,
		scale, scale, scale)
	return model.NewGPUInstanceTransform(m)
}

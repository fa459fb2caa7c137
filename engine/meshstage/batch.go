package meshstage

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/quarry-engine/quarry/engine/model"
	"github.com/quarry-engine/quarry/engine/skinning"
)

// batchChunkSize is the number of vertices each pool task transforms. Large
// enough to amortize task dispatch, small enough to spread a typical mesh
// across the pool.
const batchChunkSize = 1024

var _ BatchTransformer = &batchTransformerImpl{}

type batchTransformerImpl struct {
	pool worker.DynamicWorkerPool

	mu     sync.Mutex
	taskID int
}

// BatchTransformer fans vertex transforms out across a reusable worker pool.
// Each method partitions its input into chunks, submits one task per chunk, and
// blocks until every chunk has been written into the result slice. Results keep
// input order. The zero-length input returns an empty, non-nil slice.
//
// Methods are safe for concurrent use; chunks of separate calls interleave in
// the shared pool.
type BatchTransformer interface {
	// MainRigid transforms a static vertex slice through the main pass.
	//
	// Parameters:
	//   - pass: the frame's main pass transform
	//   - vertices: the model-space vertices
	//   - instance: the per-instance transform applied to every vertex
	//
	// Returns:
	//   - []TransformedVertex: transformed vertices in input order
	MainRigid(pass MainPass, vertices []model.GPUVertex, instance model.GPUInstanceTransform) []TransformedVertex

	// MainRigidTangent transforms a static tangent-carrying vertex slice through the main pass.
	//
	// Parameters:
	//   - pass: the frame's main pass transform
	//   - vertices: the model-space vertices with tangents
	//   - instance: the per-instance transform applied to every vertex
	//
	// Returns:
	//   - []TransformedTangentVertex: transformed vertices in input order
	MainRigidTangent(pass MainPass, vertices []model.GPUTangentVertex, instance model.GPUInstanceTransform) []TransformedTangentVertex

	// MainSkinned transforms a skinned vertex slice through the main pass.
	//
	// Parameters:
	//   - pass: the frame's main pass transform
	//   - vertices: the model-space vertices with joint influences
	//   - palette: the composed joint matrices for the mesh's current pose
	//
	// Returns:
	//   - []TransformedVertex: transformed vertices in input order
	MainSkinned(pass MainPass, vertices []model.GPUSkinnedVertex, palette *skinning.JointPalette) []TransformedVertex

	// MainSkinnedTangent transforms a skinned tangent-carrying vertex slice through the main pass.
	//
	// Parameters:
	//   - pass: the frame's main pass transform
	//   - vertices: the model-space vertices with joint influences and tangents
	//   - palette: the composed joint matrices for the mesh's current pose
	//
	// Returns:
	//   - []TransformedTangentVertex: transformed vertices in input order
	MainSkinnedTangent(pass MainPass, vertices []model.GPUSkinnedTangentVertex, palette *skinning.JointPalette) []TransformedTangentVertex

	// ShadowRigid transforms a static vertex slice through the shadow pass.
	//
	// Parameters:
	//   - pass: the frame's shadow pass transform
	//   - vertices: the model-space vertices
	//   - instance: the per-instance transform applied to every vertex
	//
	// Returns:
	//   - []DepthVertex: light clip-space positions in input order
	ShadowRigid(pass ShadowPass, vertices []model.GPUVertex, instance model.GPUInstanceTransform) []DepthVertex

	// ShadowSkinned transforms a skinned vertex slice through the shadow pass.
	//
	// Parameters:
	//   - pass: the frame's shadow pass transform
	//   - vertices: the model-space vertices with joint influences
	//   - instance: the per-instance transform applied to every vertex
	//   - palette: the composed joint matrices for the mesh's current pose
	//
	// Returns:
	//   - []DepthVertex: light clip-space positions in input order
	ShadowSkinned(pass ShadowPass, vertices []model.GPUSkinnedVertex, instance model.GPUInstanceTransform, palette *skinning.JointPalette) []DepthVertex
}

// NewBatchTransformer creates a BatchTransformer backed by a dynamic worker
// pool. Workers are reused across frames to avoid goroutine spawn overhead.
//
// Parameters:
//   - workers: the pool size; values below 1 default to NumCPU-1
//
// Returns:
//   - BatchTransformer: the pool-backed transformer
func NewBatchTransformer(workers int) BatchTransformer {
	if workers < 1 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	// Queue size of 256 accommodates typical chunk counts with headroom.
	return &batchTransformerImpl{
		pool: worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
	}
}

func (b *batchTransformerImpl) MainRigid(pass MainPass, vertices []model.GPUVertex, instance model.GPUInstanceTransform) []TransformedVertex {
	return runChunks(b, vertices, func(v model.GPUVertex) TransformedVertex {
		return pass.TransformRigid(v, instance)
	})
}

func (b *batchTransformerImpl) MainRigidTangent(pass MainPass, vertices []model.GPUTangentVertex, instance model.GPUInstanceTransform) []TransformedTangentVertex {
	return runChunks(b, vertices, func(v model.GPUTangentVertex) TransformedTangentVertex {
		return pass.TransformRigidTangent(v, instance)
	})
}

func (b *batchTransformerImpl) MainSkinned(pass MainPass, vertices []model.GPUSkinnedVertex, palette *skinning.JointPalette) []TransformedVertex {
	return runChunks(b, vertices, func(v model.GPUSkinnedVertex) TransformedVertex {
		return pass.TransformSkinned(v, palette)
	})
}

func (b *batchTransformerImpl) MainSkinnedTangent(pass MainPass, vertices []model.GPUSkinnedTangentVertex, palette *skinning.JointPalette) []TransformedTangentVertex {
	return runChunks(b, vertices, func(v model.GPUSkinnedTangentVertex) TransformedTangentVertex {
		return pass.TransformSkinnedTangent(v, palette)
	})
}

func (b *batchTransformerImpl) ShadowRigid(pass ShadowPass, vertices []model.GPUVertex, instance model.GPUInstanceTransform) []DepthVertex {
	return runChunks(b, vertices, func(v model.GPUVertex) DepthVertex {
		return pass.TransformRigid(v, instance)
	})
}

func (b *batchTransformerImpl) ShadowSkinned(pass ShadowPass, vertices []model.GPUSkinnedVertex, instance model.GPUInstanceTransform, palette *skinning.JointPalette) []DepthVertex {
	return runChunks(b, vertices, func(v model.GPUSkinnedVertex) DepthVertex {
		return pass.TransformSkinned(v, instance, palette)
	})
}

// nextTaskID hands out pool task identifiers. The pool keys tasks by ID, so
// concurrent batch calls must not collide.
func (b *batchTransformerImpl) nextTaskID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.taskID++
	return b.taskID
}

// runChunks partitions the input, submits one pool task per chunk, and blocks
// until all chunks are written. A WaitGroup provides the per-call barrier since
// pool.Wait() blocks until workers idle-exit, which is unsuitable for
// frame-rate workloads.
func runChunks[In any, Out any](b *batchTransformerImpl, in []In, fn func(In) Out) []Out {
	out := make([]Out, len(in))
	if len(in) == 0 {
		return out
	}

	var wg sync.WaitGroup
	for start := 0; start < len(in); start += batchChunkSize {
		end := min(start+batchChunkSize, len(in))

		wg.Add(1)
		lo, hi := start, end
		b.pool.SubmitTask(worker.Task{
			ID: b.nextTaskID(),
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					out[i] = fn(in[i])
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return out
}

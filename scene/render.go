package scene

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/internal/filter"
	"github.com/gogpu/soft3d/linalg"
	"github.com/gogpu/soft3d/obj"
	"github.com/gogpu/soft3d/shaders"
)

// Option configures a Renderer.
type Option func(*rendererOptions)

type rendererOptions struct {
	assets *AssetCache
}

// WithAssetCache shares an asset cache between renderers, so repeated
// renders of one scene read each file once.
func WithAssetCache(c *AssetCache) Option {
	return func(o *rendererOptions) {
		o.assets = c
	}
}

// Renderer runs the passes for one scene.
type Renderer struct {
	cfg    Config
	assets *AssetCache
}

// NewRenderer validates cfg and prepares a renderer. The config is copied.
func NewRenderer(cfg *Config, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o rendererOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.assets == nil {
		o.assets = NewAssetCache()
	}
	c := *cfg
	c.Objects = append([]Object(nil), cfg.Objects...)
	return &Renderer{cfg: c, assets: o.assets}, nil
}

// Assets returns the renderer's asset cache.
func (r *Renderer) Assets() *AssetCache { return r.assets }

// object is a loaded scene object.
type object struct {
	mesh     *obj.Model
	diffuse  *soft3d.Texture
	normal   *soft3d.Texture
	specular *soft3d.Texture
}

// Render draws the scene and returns the frame at the configured output
// size. Row 0 of the frame is the bottom of the picture. ctx is checked
// between passes and objects.
func (r *Renderer) Render(ctx context.Context) (*soft3d.Texture, error) {
	log := soft3d.Logger()
	start := time.Now()

	objects, err := r.load()
	if err != nil {
		return nil, err
	}

	cam := r.cfg.Camera
	eye, center, up := linalg.Vec3d(cam.Eye), linalg.Vec3d(cam.Center), linalg.Vec3d(cam.Up)
	light := linalg.Vec3d(r.cfg.Light.Position)

	w, h := r.cfg.renderSize()
	modelView := linalg.LookAt(eye, center, up)
	if _, err := modelView.TryInverse(); err != nil {
		return nil, fmt.Errorf("scene: camera: %w", err)
	}
	projection := linalg.Pinhole(center.Sub(eye).Norm())
	viewport := linalg.Viewport(w/8, h/8, w*3/4, h*3/4)

	var opts []shaders.Option
	if r.cfg.Shadow.Enabled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := time.Now()
		sw, sh := r.cfg.shadowSize()
		lightView := linalg.LookAt(light, center, up)
		lightProj := linalg.Pinhole(center.Sub(light).Norm())
		lightPort := linalg.Viewport(sw/8, sh/8, sw*3/4, sh*3/4)

		shadowDepth := soft3d.NewDepthBuffer(sw, sh)
		ds := shaders.NewDepthShader(lightView, lightProj, lightPort)
		for i, o := range objects {
			ds.SetMesh(o.mesh)
			if err := ds.RunOnce(shadowDepth, nil); err != nil {
				return nil, fmt.Errorf("scene: object %d: %w", i, err)
			}
		}
		m := shaders.ShadowMatrix(lightPort, lightProj, lightView, modelView)
		opts = append(opts, shaders.WithShadowMap(shadowDepth, m))
		log.Info("shadow pass done", "width", sw, "height", sh, "elapsed", time.Since(t))
	}

	t := time.Now()
	frame := soft3d.NewTexture(w, h)
	depth := soft3d.NewDepthBuffer(w, h)
	ph := shaders.NewPhongShader(modelView, projection, viewport, light.Sub(center), opts...)
	for i, o := range objects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := ph.SetMesh(o.mesh); err != nil {
			return nil, fmt.Errorf("scene: object %d: %w", i, err)
		}
		ph.SetDiffuseMap(o.diffuse)
		ph.SetNormalMap(o.normal)
		ph.SetSpecularMap(o.specular)
		if err := ph.RunOnce(depth, frame); err != nil {
			return nil, fmt.Errorf("scene: object %d: %w", i, err)
		}
	}
	log.Info("main pass done", "width", w, "height", h, "objects", len(objects), "elapsed", time.Since(t))

	if r.cfg.AmbientOcclusion {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := time.Now()
		if err := filter.NewAOFilter().Apply(depth, frame); err != nil {
			return nil, fmt.Errorf("scene: ambient occlusion: %w", err)
		}
		log.Info("ambient occlusion done", "elapsed", time.Since(t))
	}

	if r.cfg.Supersample {
		frame = filter.NewSupersampleFilter().Apply(frame)
	}

	stats := r.assets.Stats()
	log.Info("render done",
		"width", frame.Width(),
		"height", frame.Height(),
		"elapsed", time.Since(start),
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses)
	return frame, nil
}

func (r *Renderer) load() ([]object, error) {
	objects := make([]object, len(r.cfg.Objects))
	for i, oc := range r.cfg.Objects {
		m, err := r.assets.Mesh(oc.Mesh)
		if err != nil {
			return nil, err
		}
		objects[i].mesh = m

		maps := []struct {
			path string
			dst  **soft3d.Texture
		}{
			{oc.Diffuse, &objects[i].diffuse},
			{oc.Normal, &objects[i].normal},
			{oc.Specular, &objects[i].specular},
		}
		for _, mp := range maps {
			if mp.path == "" {
				continue
			}
			tex, err := r.assets.Texture(mp.path)
			if err != nil {
				return nil, err
			}
			*mp.dst = tex
		}
	}
	return objects, nil
}

package pack

import "strings"

// vanillaNamespace is implied by the game whenever a reference carries no
// explicit namespace, so a "minecraft:" prefix can be stripped without
// changing what the reference resolves to.
const vanillaNamespace = "minecraft"

// NormalizedModel holds the two projections of one legacy model path: the
// reference string written into output documents, and the slash-separated
// relative file path (without ".json") used to place standalone documents.
type NormalizedModel struct {
	Ref  string
	File string
}

// NormalizeModel produces the canonical cross-version form of an override's
// model path.
//
//   - "minecraft:item/x" and "minecraft:block/x" lose the redundant
//     namespace prefix; the item/ or block/ segment survives.
//   - "ns:path" with a custom namespace keeps the namespace in the
//     reference (the item_model component identity depends on it) while the
//     file path resolves under "ns/path".
//   - bare relative paths ("custom_items/cat_hat/cat_hat_black") are used
//     verbatim for both projections.
//
// Normalization is idempotent: feeding a returned Ref back in yields the
// same Ref.
func NormalizeModel(raw string) NormalizedModel {
	raw = strings.TrimSpace(raw)

	if rest, ok := strings.CutPrefix(raw, vanillaNamespace+":"); ok {
		return NormalizedModel{Ref: rest, File: rest}
	}
	if ns, path, ok := strings.Cut(raw, ":"); ok && ns != "" && path != "" {
		return NormalizedModel{Ref: raw, File: ns + "/" + path}
	}
	return NormalizedModel{Ref: raw, File: raw}
}

// NormalizeTexture produces the fallback model reference implied by a
// texture path (textures.layer0) or a parent model. Texture references that
// name neither an item/ nor a block/ directory are item textures, so the
// item/ prefix is restored.
func NormalizeTexture(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(raw, vanillaNamespace+":"); ok {
		raw = rest
	}
	if strings.HasPrefix(raw, "item/") || strings.HasPrefix(raw, "block/") {
		return raw
	}
	if strings.Contains(raw, ":") {
		return raw
	}
	return "item/" + raw
}

// damageFallbackRef rewrites an item/ fallback reference to the relocated
// items/ directory for damage-mode documents.
func damageFallbackRef(ref string) string {
	if rest, ok := strings.CutPrefix(ref, "item/"); ok {
		return "items/" + rest
	}
	return ref
}

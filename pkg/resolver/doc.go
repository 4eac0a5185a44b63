// Package resolver expands a stored template and merges it into a compose draft.
//
// # Resolution
//
// Resolution runs in three steps over one repository snapshot:
//
//  1. ExpandIncludes replaces {{template:Name}} and {{templateid:ID}} tokens with the
//     recursively expanded bodies of the referenced templates. A template that appears
//     in its own ancestor path fails with a *CircularReferenceError; chains nested
//     deeper than the configured ceiling fail with ErrResolutionTooDeep. Unknown
//     references are dropped and reported as warnings.
//  2. SubstituteHTML replaces {DATE}, {TIME}, {SENDER_NAME} and {SENDER_EMAIL} in the
//     body, case-insensitively, escaping each value. Substitute does the same for the
//     plain-text subject. One Context serves the whole call, so nested templates see
//     the same date and sender.
//  3. Compose computes a Patch against the draft's current state.
//
// # Include names
//
// Names match after Unicode case folding, so {{template:signature}} finds a template
// named "Signature". Bodies that went through an HTML editor may carry escaped names
// ({{template:Terms &amp; Conditions}}); when the literal name is unknown the
// unescaped form is tried. Duplicate names resolve to the first template in
// repository order. Ids match exactly.
//
// # Insertion
//
// Resolver.ResolveAndInsert runs all three steps and applies the patch only when
// every step succeeded:
//
//	r := resolver.New(store, resolver.WithLogger(log))
//	res, err := r.ResolveAndInsert(ctx, tmpl, draft, resolver.Context{
//		SenderName:  "Ann",
//		SenderEmail: "ann@example.com",
//	})
//	if err != nil {
//		// nothing was written to draft
//		return err
//	}
//	for _, w := range res.Warnings {
//		log.Warn("unresolved include", "ref", w.String(), "within", w.Within)
//	}
//
// InsertByID loads the root template from the same snapshot used for includes.
// Resolve stops after step 2 and is what previews use.
//
// The template's insertion mode decides how the body meets the draft: append
// (default) or replace. Every other field is decided on its own: a non-empty
// subject or recipient list overwrites the draft's, empty ones leave it alone, and
// attachments are decoded and always added.
//
// Patches carry the revision they were computed from (Patch.Base). A Document that
// changed in between may reject the patch; the resolver returns that error wrapped
// in ErrDocument and the caller retries with fresh state.
//
// # Errors
//
// ErrCircularReference, ErrResolutionTooDeep and ErrAttachmentDecoding abort the
// call. ErrRepository and ErrDocument wrap failures of the two collaborators.
// Typed errors (*CircularReferenceError, *AttachmentDecodingError) carry the
// offending template or attachment and match their sentinels via errors.Is.
//
// The resolver keeps no cache; every call builds its own index from Repository.List.
package resolver

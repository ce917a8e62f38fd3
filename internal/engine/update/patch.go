package update

import (
	"strings"

	"go.trai.ch/relock/internal/core/domain"
	"go.trai.ch/zerr"
)

// patchFile rewrites every given declaration inside one file. For each
// declaration the new text is computed by substituting the old requirement
// expression with the new one inside the old declaration string (exact,
// first-match textual substitution, not structural editing), then every
// occurrence of the old declaration in the file is replaced.
//
// Each declaration must occur in the file's content prior to patching, and
// the file's content must differ from its input afterwards; either violation
// is a contract failure, not a no-op.
func patchFile(file domain.ManagedFile, decls []domain.Declaration, oldExpr, newExpr string) (domain.ManagedFile, error) {
	content := file.Content

	for _, decl := range decls {
		if !strings.Contains(content, decl.Text) {
			err := zerr.Wrap(domain.ErrDeclarationNotFound, "declaration text absent from file content")
			err = zerr.With(err, "file", file.Path.String())
			return domain.ManagedFile{}, zerr.With(err, "declaration", decl.Text)
		}

		updated := strings.Replace(decl.Text, oldExpr, newExpr, 1)
		content = strings.ReplaceAll(content, decl.Text, updated)
	}

	if content == file.Content {
		err := zerr.Wrap(domain.ErrPatchUnchanged, "patched content identical to input")
		err = zerr.With(err, "file", file.Path.String())
		err = zerr.With(err, "old_expression", oldExpr)
		return domain.ManagedFile{}, zerr.With(err, "new_expression", newExpr)
	}

	return file.WithContent(content), nil
}

package customize

// Step is one state of the customization wizard
type Step string

const (
	StepDesign  Step = "design"  // initial: pick a design template
	StepUpload  Step = "upload"  // upload photo(s)
	StepPreview Step = "preview" // terminal for this flow; submit exits to the order collaborator
)

// UploadGuard reports whether the upload step is complete for the current
// template: collage templates need at least one filled slot, every other
// template needs the single photo.
type UploadGuard func() bool

// NextStep advances the wizard one step forward. design→upload is
// unconditional; upload→preview is guarded and returns a ValidationError
// without changing state when the guard fails. There is no path into preview
// that skips the guard.
func NextStep(current Step, isCollage bool, guard UploadGuard) (Step, error) {
	switch current {
	case StepDesign:
		return StepUpload, nil
	case StepUpload:
		if guard == nil || !guard() {
			if isCollage {
				return current, NewValidationError("agrega al menos una foto al collage antes de continuar")
			}
			return current, NewValidationError("sube una foto antes de continuar")
		}
		return StepPreview, nil
	case StepPreview:
		return current, NewValidationError("ya estás en el último paso")
	default:
		return current, NewValidationError("unknown step")
	}
}

// PrevStep moves the wizard one step back. Both transitions are unconditional
// and non-destructive: selections and uploaded images are preserved.
func PrevStep(current Step) (Step, error) {
	switch current {
	case StepPreview:
		return StepUpload, nil
	case StepUpload:
		return StepDesign, nil
	case StepDesign:
		return current, NewValidationError("ya estás en el primer paso")
	default:
		return current, NewValidationError("unknown step")
	}
}

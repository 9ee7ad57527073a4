package httpapi

import "net/http"

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	items := h.formationService.List(ctx)
	out := make([]formationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, formationToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormation")
	defer span.End()

	name := r.PathValue("name")
	item, err := h.formationService.Get(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get formation failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formationToDTO(item))
}

package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"info": s.catalog.Info()})
}

func (s *Server) handleProductGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.catalog.ProductGroups(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeOK(w, map[string]any{"product-groups": groups})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	pgID := chi.URLParam(r, "pgId")
	products, err := s.catalog.Products(r.Context(), pgID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	records := make([][]string, 0, len(products))
	for _, p := range products {
		records = append(records, p.Record())
	}
	writeOK(w, map[string]any{"pg-id": pgID, "products": records})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	pgID := chi.URLParam(r, "pgId")
	pID := chi.URLParam(r, "pId")
	p, err := s.catalog.Product(r.Context(), pgID, pID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeOK(w, map[string]any{"pg-id": pgID, "p-id": pID, "product": p.Record()})
}

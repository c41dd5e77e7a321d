package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/caja-diaria/internal/application/ledger"
	"github.com/tu-usuario/caja-diaria/internal/domain/snapshot"
)

// SnapshotHandler exporta e importa el estado completo (backup manual).
type SnapshotHandler struct {
	store *ledger.Store
}

// NewSnapshotHandler construye el handler.
func NewSnapshotHandler(store *ledger.Store) *SnapshotHandler {
	return &SnapshotHandler{store: store}
}

// Export devuelve el documento de snapshot tal cual se persiste.
func (h *SnapshotHandler) Export(c *fiber.Ctx) error {
	data, err := snapshot.Marshal(h.store.ExportSnapshot())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// Import reemplaza el estado completo por el documento recibido. Un
// documento inválido se rechaza sin tocar el estado actual.
func (h *SnapshotHandler) Import(c *fiber.Ctx) error {
	snap, err := snapshot.Unmarshal(c.Body())
	if err != nil {
		return respondError(c, err)
	}
	err = h.store.LoadSnapshot(snap)
	return respondMutation(c, fiber.StatusOK, fiber.Map{"message": "snapshot importado"}, err)
}

package ledger

import "github.com/jsalazarc/Ventas-api/internal/domain/entity"

// ClassifyUrgency clasifica el nivel de stock frente al umbral mínimo del
// producto. Función pura de (stock, umbral): CRITICO con stock en cero, ALTO
// con 2 o menos, MEDIO en o bajo el umbral, BAJO en cualquier otro caso.
func ClassifyUrgency(stock, minStock int64) string {
	switch {
	case stock == 0:
		return entity.UrgencyCritico
	case stock <= 2:
		return entity.UrgencyAlto
	case stock <= minStock:
		return entity.UrgencyMedio
	default:
		return entity.UrgencyBajo
	}
}

// ShouldAlert indica si el nivel de urgencia amerita emitir una alerta.
func ShouldAlert(urgency string) bool {
	return urgency != entity.UrgencyBajo
}

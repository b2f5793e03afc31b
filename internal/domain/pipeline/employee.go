package pipeline

import "github.com/jhoicas/pipeline-crm/internal/domain/entity"

// EmployeeChangeLog decide si una reasignación debe registrarse y con qué nota.
//
// La comparación se hace contra el empleado de la última entrada del historial con
// employee_id no nulo (lastWithEmployee), no contra la fila viva del cliente. Sin entradas
// previas se compara contra nil. Si newEmployeeID es nil la nota es siempre "Employee removed".
func EmployeeChangeLog(lastWithEmployee *entity.StageLog, newEmployeeID *string) (log bool, notes string) {
	var previous *string
	if lastWithEmployee != nil {
		previous = lastWithEmployee.EmployeeID
	}
	if sameID(previous, newEmployeeID) {
		return false, ""
	}
	if newEmployeeID == nil {
		return true, entity.NoteEmployeeRemoved
	}
	return true, ""
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

package cmd

import (
	"shipflow/internal/adapters/out/postgres"
	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

// CompositionRoot wires application handlers to their infrastructure
// dependencies. All handlers share one GORM connection; command handlers get
// fresh unit of work instances per operation.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot builds the dependency graph for the application.
func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateRegisterParcelCommandHandler() commands.RegisterParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateParcelStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelHistoryQueryHandler() queries.GetParcelHistoryQueryHandler {
	return queries.NewGetParcelHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOverdueParcelsQueryHandler() queries.ListOverdueParcelsQueryHandler {
	return queries.NewListOverdueParcelsQueryHandler(c.gormDB)
}

// FuncParcelUoWFactory adapts a closure to the commands.ParcelUoWFactory interface.
type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

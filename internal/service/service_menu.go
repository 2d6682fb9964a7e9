package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/core-admin/internal/config"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/store"
	"github.com/avolkov/core-admin/models"
)

type menuService struct {
	menus store.MenuRepository
	audit AuditSink
	cfg   config.Menu
	log   *logger.Logger
}

func NewMenuService(menus store.MenuRepository, audit AuditSink, cfg config.Menu, log *logger.Logger) MenuService {
	return &menuService{
		menus: menus,
		audit: audit,
		cfg:   cfg,
		log:   log,
	}
}

func (m *menuService) Get(ctx context.Context, menuNo string) (models.MenuNode, error) {
	if menuNo == "" {
		return models.MenuNode{}, ErrInvalidDataProvided
	}
	return m.menus.Get(ctx, menuNo)
}

func (m *menuService) ListChildren(ctx context.Context, upperMenuNo *string) ([]models.MenuNode, error) {
	return m.menus.ListChildren(ctx, upperMenuNo)
}

func (m *menuService) Search(ctx context.Context, filter models.MenuFilter) ([]models.MenuNode, int, error) {
	return m.menus.Search(ctx, filter)
}

func (m *menuService) Create(ctx context.Context, node models.MenuNode, createdBy string) (models.MenuNode, error) {
	log := logger.FromContext(ctx)

	if node.MenuNo == "" || node.MenuName == "" {
		return models.MenuNode{}, ErrInvalidDataProvided
	}

	if !node.IsRoot() {
		parentDepth, err := m.menus.Depth(ctx, *node.UpperMenuNo)
		if err != nil {
			if errors.Is(err, store.ErrMenuNotFound) {
				return models.MenuNode{}, store.ErrParentMenuMissing
			}
			return models.MenuNode{}, err
		}
		if parentDepth+1 > m.cfg.MaxDepth {
			return models.MenuNode{}, fmt.Errorf("%w: depth %d exceeds bound %d", ErrDepthExceeded, parentDepth+1, m.cfg.MaxDepth)
		}
	}

	node.CreatedBy = createdBy
	node.UpdatedBy = createdBy

	created, err := m.menus.Create(ctx, node)
	if err != nil {
		log.Err(err).Str("menu_no", node.MenuNo).Msg("error creating menu")
		return models.MenuNode{}, err
	}

	m.audit.Record(ctx, models.AuditMenuChange, created.MenuNo, models.AuditOutcomeSuccess, "created by "+createdBy)
	return created, nil
}

// Update applies a partial patch. A patch that sets UpperMenuNo moves the node
// together with its whole subtree, so the cycle and depth invariants are
// checked against every moved descendant, not just the node itself.
func (m *menuService) Update(ctx context.Context, menuNo string, patch models.MenuPatch, updatedBy string) (models.MenuNode, error) {
	log := logger.FromContext(ctx)

	if menuNo == "" || patch.Empty() {
		return models.MenuNode{}, ErrInvalidDataProvided
	}

	if patch.UpperMenuNo != nil {
		if err := m.validateMove(ctx, menuNo, *patch.UpperMenuNo); err != nil {
			return models.MenuNode{}, err
		}
	}

	updated, err := m.menus.Update(ctx, menuNo, patch, updatedBy)
	if err != nil {
		log.Err(err).Str("menu_no", menuNo).Msg("error updating menu")
		return models.MenuNode{}, err
	}

	m.audit.Record(ctx, models.AuditMenuChange, menuNo, models.AuditOutcomeSuccess, "updated by "+updatedBy)
	return updated, nil
}

func (m *menuService) Delete(ctx context.Context, menuNo, deletedBy string) error {
	log := logger.FromContext(ctx)

	if menuNo == "" {
		return ErrInvalidDataProvided
	}

	if err := m.menus.Delete(ctx, menuNo); err != nil {
		log.Err(err).Str("menu_no", menuNo).Msg("error deleting menu")
		return err
	}

	m.audit.Record(ctx, models.AuditMenuChange, menuNo, models.AuditOutcomeSuccess, "deleted by "+deletedBy)
	return nil
}

// Reorder re-assigns menu_order among the direct children of upperMenuNo.
// orderedIDs must list exactly the current child set.
func (m *menuService) Reorder(ctx context.Context, upperMenuNo *string, orderedIDs []string, updatedBy string) error {
	log := logger.FromContext(ctx)

	children, err := m.menus.ListChildren(ctx, upperMenuNo)
	if err != nil {
		return err
	}
	if len(children) != len(orderedIDs) {
		return fmt.Errorf("%w: expected %d ids, got %d", ErrInvalidDataProvided, len(children), len(orderedIDs))
	}
	current := make(map[string]struct{}, len(children))
	for _, child := range children {
		current[child.MenuNo] = struct{}{}
	}
	for _, id := range orderedIDs {
		if _, ok := current[id]; !ok {
			return fmt.Errorf("%w: %s is not a child of the parent", ErrInvalidDataProvided, id)
		}
		delete(current, id)
	}

	if err = m.menus.Reorder(ctx, upperMenuNo, orderedIDs); err != nil {
		log.Err(err).Msg("error reordering menus")
		return err
	}

	subject := "root"
	if upperMenuNo != nil {
		subject = *upperMenuNo
	}
	m.audit.Record(ctx, models.AuditMenuChange, subject, models.AuditOutcomeSuccess, "children reordered by "+updatedBy)
	return nil
}

// CopySubtree clones the source node, and optionally its descendants, under a
// new parent. The whole copy runs inside one store transaction so a partial
// tree is never observable.
func (m *menuService) CopySubtree(ctx context.Context, req models.CopyMenuRequest, createdBy string) (models.MenuNode, error) {
	log := logger.FromContext(ctx)

	if req.SourceMenuID == "" || req.NewMenuID == "" || req.NewMenuNm == "" {
		return models.MenuNode{}, ErrInvalidDataProvided
	}
	if req.NewParentID != nil && *req.NewParentID == req.SourceMenuID {
		return models.MenuNode{}, ErrSelfCopy
	}

	if _, err := m.menus.Get(ctx, req.NewMenuID); err == nil {
		return models.MenuNode{}, store.ErrMenuAlreadyExists
	} else if !errors.Is(err, store.ErrMenuNotFound) {
		return models.MenuNode{}, err
	}

	// breadth-first snapshot of the source, root first
	nodes, err := m.menus.Subtree(ctx, req.SourceMenuID)
	if err != nil {
		return models.MenuNode{}, err
	}

	parentDepth := -1
	if req.NewParentID != nil && *req.NewParentID != "" {
		for _, node := range nodes {
			if node.MenuNo == *req.NewParentID {
				return models.MenuNode{}, ErrCycleDetected
			}
		}
		parentDepth, err = m.menus.Depth(ctx, *req.NewParentID)
		if err != nil {
			if errors.Is(err, store.ErrMenuNotFound) {
				return models.MenuNode{}, store.ErrParentMenuMissing
			}
			return models.MenuNode{}, err
		}
	}

	height := 0
	if req.CopyChildren {
		height = subtreeHeight(nodes)
	}
	if projected := parentDepth + 1 + height; projected > m.cfg.MaxDepth {
		return models.MenuNode{}, fmt.Errorf("%w: projected depth %d exceeds bound %d", ErrDepthExceeded, projected, m.cfg.MaxDepth)
	}

	rootOrder := 0
	if req.NewMenuOrder != nil {
		rootOrder = *req.NewMenuOrder
	} else {
		maxOrder, orderErr := m.menus.MaxSiblingOrder(ctx, req.NewParentID)
		if orderErr != nil {
			return models.MenuNode{}, orderErr
		}
		rootOrder = maxOrder + 1
	}

	src := nodes[0]
	newRoot := models.MenuNode{
		MenuNo:          req.NewMenuID,
		UpperMenuNo:     req.NewParentID,
		MenuOrder:       rootOrder,
		MenuName:        req.NewMenuNm,
		ProgramFileName: src.ProgramFileName,
		DisplayFlag:     src.DisplayFlag,
		CreatedBy:       createdBy,
		UpdatedBy:       createdBy,
	}
	if req.NewParentID != nil && *req.NewParentID == "" {
		newRoot.UpperMenuNo = nil
	}

	newNodes := []models.MenuNode{newRoot}
	if req.CopyChildren {
		// old id -> new id; the snapshot is parent-before-child, so every
		// parent is remapped before its children are reached
		idMap := map[string]string{src.MenuNo: req.NewMenuID}
		counter := 1
		for _, node := range nodes[1:] {
			newID := fmt.Sprintf("%s-%03d", req.NewMenuID, counter)
			counter++
			idMap[node.MenuNo] = newID

			newParent := idMap[*node.UpperMenuNo]
			newNodes = append(newNodes, models.MenuNode{
				MenuNo:          newID,
				UpperMenuNo:     &newParent,
				MenuOrder:       node.MenuOrder,
				MenuName:        node.MenuName,
				ProgramFileName: node.ProgramFileName,
				DisplayFlag:     node.DisplayFlag,
				CreatedBy:       createdBy,
				UpdatedBy:       createdBy,
			})
		}
	}

	if err = m.menus.InsertSubtree(ctx, newNodes); err != nil {
		log.Err(err).Str("source", req.SourceMenuID).Str("new_menu_no", req.NewMenuID).Msg("error inserting copied subtree")
		m.audit.Record(ctx, models.AuditMenuChange, req.NewMenuID, models.AuditOutcomeError, "subtree copy failed")
		return models.MenuNode{}, err
	}

	m.audit.Record(ctx, models.AuditMenuChange, req.NewMenuID, models.AuditOutcomeSuccess,
		fmt.Sprintf("copied from %s by %s (%d nodes)", req.SourceMenuID, createdBy, len(newNodes)))

	created, err := m.menus.Get(ctx, req.NewMenuID)
	if err != nil {
		return newRoot, nil
	}
	return created, nil
}

// validateMove checks that re-parenting menuNo under newParent keeps the tree
// acyclic and within the depth bound for every moved descendant.
func (m *menuService) validateMove(ctx context.Context, menuNo, newParent string) error {
	nodes, err := m.menus.Subtree(ctx, menuNo)
	if err != nil {
		return err
	}

	parentDepth := -1
	if newParent != "" {
		if newParent == menuNo {
			return ErrCycleDetected
		}
		for _, node := range nodes {
			if node.MenuNo == newParent {
				return ErrCycleDetected
			}
		}
		parentDepth, err = m.menus.Depth(ctx, newParent)
		if err != nil {
			if errors.Is(err, store.ErrMenuNotFound) {
				return store.ErrParentMenuMissing
			}
			return err
		}
	}

	if projected := parentDepth + 1 + subtreeHeight(nodes); projected > m.cfg.MaxDepth {
		return fmt.Errorf("%w: projected depth %d exceeds bound %d", ErrDepthExceeded, projected, m.cfg.MaxDepth)
	}
	return nil
}

// subtreeHeight returns the height of a breadth-first snapshot: 0 for a single
// node, 1 when the root has children, and so on.
func subtreeHeight(nodes []models.MenuNode) int {
	if len(nodes) == 0 {
		return 0
	}
	depths := map[string]int{nodes[0].MenuNo: 0}
	height := 0
	for _, node := range nodes[1:] {
		depth := depths[*node.UpperMenuNo] + 1
		depths[node.MenuNo] = depth
		if depth > height {
			height = depth
		}
	}
	return height
}

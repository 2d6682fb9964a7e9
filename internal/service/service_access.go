package service

import (
	"context"
	"errors"
	"sort"

	"github.com/avolkov/core-admin/internal/config"
	"github.com/avolkov/core-admin/internal/logger"
	"github.com/avolkov/core-admin/internal/store"
	"github.com/avolkov/core-admin/models"
)

type accessService struct {
	menus  store.MenuRepository
	grants store.GrantRepository
	audit  AuditSink
	cfg    config.Auth
	log    *logger.Logger
}

func NewAccessService(menus store.MenuRepository, grants store.GrantRepository, audit AuditSink, cfg config.Auth, log *logger.Logger) AccessService {
	return &accessService{
		menus:  menus,
		grants: grants,
		audit:  audit,
		cfg:    cfg,
		log:    log,
	}
}

// VisibleMenus projects the catalog down to the caller's grant set closed
// under ancestors, so the returned forest stays connected and renderable.
func (a *accessService) VisibleMenus(ctx context.Context, caller *models.TokenClaims) ([]*models.MenuTreeNode, error) {
	log := logger.FromContext(ctx)

	if caller == nil {
		return nil, ErrInvalidDataProvided
	}

	catalog, err := a.menus.All(ctx)
	if err != nil {
		log.Err(err).Msg("error loading menu catalog")
		return nil, err
	}

	if a.isAdmin(caller.GroupID) {
		return buildForest(catalog, nil), nil
	}

	granted, err := a.grants.MenusForGroup(ctx, caller.GroupID)
	if err != nil {
		log.Err(err).Str("group_id", caller.GroupID).Msg("error loading grants")
		return nil, err
	}

	visible := ancestorClosure(catalog, granted)
	return buildForest(catalog, visible), nil
}

func (a *accessService) CanAccess(ctx context.Context, caller *models.TokenClaims, menuNo string) (bool, error) {
	if caller == nil || menuNo == "" {
		return false, ErrInvalidDataProvided
	}
	if a.isAdmin(caller.GroupID) {
		if _, err := a.menus.Get(ctx, menuNo); err != nil {
			if errors.Is(err, store.ErrMenuNotFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}

	granted, err := a.grants.MenusForGroup(ctx, caller.GroupID)
	if err != nil {
		return false, err
	}
	for _, no := range granted {
		if no == menuNo {
			return true, nil
		}
	}
	return false, nil
}

func (a *accessService) GrantedMenus(ctx context.Context, groupID string) ([]string, error) {
	if groupID == "" {
		return nil, ErrInvalidDataProvided
	}
	return a.grants.MenusForGroup(ctx, groupID)
}

func (a *accessService) ReplaceGrants(ctx context.Context, groupID string, menuNos []string, updatedBy string) error {
	log := logger.FromContext(ctx)

	if groupID == "" {
		return ErrInvalidDataProvided
	}

	if err := a.grants.ReplaceForGroup(ctx, groupID, menuNos); err != nil {
		log.Err(err).Str("group_id", groupID).Msg("error replacing grants")
		return err
	}

	a.audit.Record(ctx, models.AuditGrantChange, groupID, models.AuditOutcomeSuccess, "grant set replaced by "+updatedBy)
	return nil
}

func (a *accessService) isAdmin(groupID string) bool {
	return a.cfg.AdminGroupID != "" && groupID == a.cfg.AdminGroupID
}

// ancestorClosure expands the granted menu set with every ancestor of a
// granted node. Grants referencing menus that no longer exist are ignored.
func ancestorClosure(catalog []models.MenuNode, granted []string) map[string]struct{} {
	parents := make(map[string]*string, len(catalog))
	for _, node := range catalog {
		parents[node.MenuNo] = node.UpperMenuNo
	}

	visible := make(map[string]struct{}, len(granted))
	for _, no := range granted {
		for cur := no; ; {
			parent, exists := parents[cur]
			if !exists {
				break
			}
			if _, seen := visible[cur]; seen {
				break
			}
			visible[cur] = struct{}{}
			if parent == nil || *parent == "" {
				break
			}
			cur = *parent
		}
	}
	return visible
}

// buildForest assembles the tree restricted to the visible set (nil means
// everything) with children ordered by MenuOrder at every level.
func buildForest(catalog []models.MenuNode, visible map[string]struct{}) []*models.MenuTreeNode {
	byNo := make(map[string]*models.MenuTreeNode, len(catalog))
	for _, node := range catalog {
		if visible != nil {
			if _, ok := visible[node.MenuNo]; !ok {
				continue
			}
		}
		byNo[node.MenuNo] = &models.MenuTreeNode{MenuNode: node}
	}

	var roots []*models.MenuTreeNode
	for _, node := range catalog {
		tree, ok := byNo[node.MenuNo]
		if !ok {
			continue
		}
		if node.IsRoot() {
			roots = append(roots, tree)
			continue
		}
		if parent, ok := byNo[*node.UpperMenuNo]; ok {
			parent.Children = append(parent.Children, tree)
		} else {
			// parent missing from the visible set, promote to keep the node reachable
			roots = append(roots, tree)
		}
	}

	sortForest(roots)
	return roots
}

func sortForest(nodes []*models.MenuTreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].MenuOrder != nodes[j].MenuOrder {
			return nodes[i].MenuOrder < nodes[j].MenuOrder
		}
		return nodes[i].MenuNo < nodes[j].MenuNo
	})
	for _, node := range nodes {
		sortForest(node.Children)
	}
}
